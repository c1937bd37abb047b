package handlers

import (
	"net/http"
	"time"

	"tourops/internal/http/middleware"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/export
// Streams the filtered bookings list as CSV.
func ExportBookingsCSV(c *gin.Context) {
	filename := "bookings_" + time.Now().Format("20060102_150405") + ".csv"
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	svc := services.ExportService{RequestID: middleware.GetRequestID(c)}
	if err := svc.WriteBookingsCSV(c.Writer, bookingFilterFromQuery(c)); err != nil {
		// headers may already be out; best effort error status
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
