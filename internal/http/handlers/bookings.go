package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

func bookingFilterFromQuery(c *gin.Context) repositories.BookingFilter {
	f := repositories.BookingFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("spotId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.SpotID = id
		}
	}
	return f
}

// GET /api/bookings
func GetBookings(c *gin.Context) {
	repo := repositories.BookingRepository{}
	bookings, err := repo.List(bookingFilterFromQuery(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	detail, err := bookingService(c).Detail(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var in services.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	booking, err := bookingService(c).Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

type bookingStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/bookings/:id/status
func UpdateBookingStatus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := bookingService(c).UpdateStatus(id, strings.ToLower(strings.TrimSpace(req.Status))); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": strings.ToLower(strings.TrimSpace(req.Status))})
}

// DELETE /api/bookings/:id
// Bookings are never hard-deleted; delete cancels and releases seats.
func CancelBooking(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := bookingService(c).Cancel(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

type travelersRequest struct {
	Travelers []models.Traveler `json:"travelers"`
}

// PUT /api/bookings/:id/travelers
func ReplaceBookingTravelers(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req travelersRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	travelers, err := bookingService(c).ReplaceTravelers(id, req.Travelers)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"travelers": travelers})
}

type bookingNotesRequest struct {
	Notes string `json:"notes"`
}

// PUT /api/bookings/:id/notes
func UpdateBookingNotes(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req bookingNotesRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.BookingRepository{}
	if err := repo.UpdateNotes(id, req.Notes); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "notes": req.Notes})
}
