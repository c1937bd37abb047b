package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"tourops/internal/domain"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// ExportService streams the bookings list as CSV for the dashboard export
// button.
type ExportService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
}

var bookingCSVHeader = []string{
	"reference", "tour", "spot", "customer", "seats", "total_amount", "status", "channel", "created_at",
}

func (s ExportService) WriteBookingsCSV(w io.Writer, f repositories.BookingFilter) error {
	bookings, err := s.BookingRepo.List(f)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(bookingCSVHeader); err != nil {
		return err
	}
	for _, b := range bookings {
		record := []string{
			b.Reference,
			b.TourName,
			b.SpotName,
			b.CustomerName,
			strconv.Itoa(b.Seats),
			strconv.FormatInt(b.TotalAmount, 10),
			b.Status,
			b.Channel,
			b.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	utils.LogEvent(s.RequestID, "export", "bookings_csv", fmt.Sprintf("rows=%d", len(bookings)))
	return nil
}
