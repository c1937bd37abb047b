package services

import (
	"database/sql"

	"tourops/internal/config"
	"tourops/internal/domain"
)

// DashboardSummary backs the admin home page widgets.
type DashboardSummary struct {
	ToursPublished    int   `json:"toursPublished"`
	SpotsOpen         int   `json:"spotsOpen"`
	BookingsPending   int   `json:"bookingsPending"`
	BookingsConfirmed int   `json:"bookingsConfirmed"`
	SeatsBooked       int   `json:"seatsBooked"`
	Revenue           int64 `json:"revenue"`
}

type ReportsService struct {
	DB *sql.DB
}

func (s ReportsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s ReportsService) Summary() (DashboardSummary, error) {
	var out DashboardSummary
	err := s.db().QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM tours WHERE status = 'published'),
			(SELECT COUNT(*) FROM spots WHERE status = 'Available'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'),
			(SELECT COALESCE(SUM(seats), 0) FROM bookings WHERE status <> 'cancelled'),
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'COMPLETED')
	`).Scan(
		&out.ToursPublished,
		&out.SpotsOpen,
		&out.BookingsPending,
		&out.BookingsConfirmed,
		&out.SeatsBooked,
		&out.Revenue,
	)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}
	return out, nil
}
