package handlers

import (
	"net/http"

	"tourops/internal/http/middleware"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/voucher
func GetBookingVoucherPDF(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateVoucher(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/bookings/:id/invoice
func GetBookingInvoicePDF(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
