package handlers

import (
	"net/http"
	"strings"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/payments
func GetBookingPayments(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.PaymentRepository{}
	payments, err := repo.ListByBooking(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// POST /api/bookings/:id/payments
func CreateBookingPayment(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var payment models.Payment
	if !BindJSONOrError(c, &payment) {
		return
	}
	payment.BookingID = id

	if payment.Amount <= 0 {
		RespondError(c, http.StatusBadRequest, "amount must be positive", nil)
		return
	}
	status := strings.ToUpper(strings.TrimSpace(payment.Status))
	if status == "" {
		status = models.PaymentStatusPending
	}
	if !models.ValidPaymentStatus(status) {
		RespondError(c, http.StatusBadRequest, "invalid payment status", nil)
		return
	}
	payment.Status = status

	bookings := repositories.BookingRepository{}
	if _, err := bookings.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.PaymentRepository{}
	pid, err := repo.Create(payment)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save payment", err)
		return
	}
	created, err := repo.GetByID(pid)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/payments/:id/status
func UpdatePaymentStatus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !models.ValidPaymentStatus(status) {
		RespondError(c, http.StatusBadRequest, "invalid payment status", nil)
		return
	}

	repo := repositories.PaymentRepository{}
	if err := repo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}
