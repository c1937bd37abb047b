package services

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/metrics"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// BookingService owns the booking lifecycle. Seat reservation and booking
// creation happen in one transaction so booked_seats can never drift past
// max_seats, whatever the admin UI and the public site do concurrently.
type BookingService struct {
	DB            *sql.DB
	BookingRepo   repositories.BookingRepository
	SpotRepo      repositories.SpotRepository
	TravelerRepo  repositories.TravelerRepository
	CustomerRepo  repositories.CustomerRepository
	PaymentRepo   repositories.PaymentRepository
	RequestID     string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) spots() repositories.SpotRepository {
	if s.SpotRepo.DB != nil {
		return s.SpotRepo
	}
	return repositories.SpotRepository{DB: s.db()}
}

func (s BookingService) travelers() repositories.TravelerRepository {
	if s.TravelerRepo.DB != nil {
		return s.TravelerRepo
	}
	return repositories.TravelerRepository{DB: s.db()}
}

func (s BookingService) customers() repositories.CustomerRepository {
	if s.CustomerRepo.DB != nil {
		return s.CustomerRepo
	}
	return repositories.CustomerRepository{DB: s.db()}
}

func (s BookingService) payments() repositories.PaymentRepository {
	if s.PaymentRepo.DB != nil {
		return s.PaymentRepo
	}
	return repositories.PaymentRepository{DB: s.db()}
}

type CreateBookingInput struct {
	SpotID      int64             `json:"spotId"`
	CustomerID  int64             `json:"customerId"`
	Customer    models.Customer   `json:"customer"`
	Seats       int               `json:"seats"`
	TotalAmount int64             `json:"totalAmount"`
	Status      string            `json:"status"`
	Channel     string            `json:"channel"`
	Notes       string            `json:"notes"`
	Travelers   []models.Traveler `json:"travelers"`
}

// Create reserves capacity and persists the booking with its travelers.
// A traveler list shorter than the seat count is allowed; the dashboard
// surfaces it as a mismatch instead of blocking the sale.
func (s BookingService) Create(in CreateBookingInput) (models.Booking, error) {
	if in.SpotID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "spotId", Msg: "required"}
	}
	if in.Seats <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "seats", Msg: "must be positive"}
	}
	if in.CustomerID <= 0 && strings.TrimSpace(in.Customer.Name) == "" {
		return models.Booking{}, domain.ValidationError{Field: "customer", Msg: "customerId or customer details required"}
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.BookingStatusPending
	}
	if status != models.BookingStatusPending && status != models.BookingStatusConfirmed {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "must be pending or confirmed"}
	}

	utils.LogEvent(s.RequestID, "booking", "create", "spot_id="+strconv.FormatInt(in.SpotID, 10)+" seats="+strconv.Itoa(in.Seats))

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	customerID := in.CustomerID
	if customerID <= 0 {
		customerID, err = s.customers().GetOrCreateByEmail(tx, in.Customer)
		if err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
	}

	if err := s.spots().ReserveSeats(tx, in.SpotID, in.Seats); err != nil {
		return models.Booking{}, err
	}

	total := in.TotalAmount
	if total <= 0 {
		total, err = basePriceTotal(tx, in.SpotID, in.Seats)
		if err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
	}

	booking := models.Booking{
		Reference:   uuid.NewString(),
		SpotID:      in.SpotID,
		CustomerID:  customerID,
		Seats:       in.Seats,
		TotalAmount: total,
		Status:      status,
		Channel:     utils.FirstNonEmpty(strings.TrimSpace(in.Channel), "dashboard"),
		Notes:       strings.TrimSpace(in.Notes),
	}

	id, err := s.bookings().Create(tx, booking)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	if len(in.Travelers) > 0 {
		if err := s.travelers().ReplaceForBooking(tx, id, in.Travelers); err != nil {
			return models.Booking{}, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	metrics.IncBookingCreated(status)
	// best effort, only feeds the sold-out counter
	if spot, err := s.spots().GetByID(in.SpotID); err == nil && spot.Status == domain.SpotStatusFull {
		metrics.IncSpotSoldOut()
	}
	utils.LogEvent(s.RequestID, "booking", "create_done", "id="+strconv.FormatInt(id, 10))

	booking.ID = id
	return booking, nil
}

// basePriceTotal prices a booking from the tour base price when the caller
// does not supply a total.
func basePriceTotal(tx *sql.Tx, spotID int64, seats int) (int64, error) {
	var basePrice int64
	err := tx.QueryRow(`
		SELECT COALESCE(t.base_price, 0)
		FROM spots s
		LEFT JOIN tours t ON t.id = s.tour_id
		WHERE s.id = ?
		LIMIT 1
	`, spotID).Scan(&basePrice)
	if err != nil {
		return 0, err
	}
	return basePrice * int64(seats), nil
}

// Cancel releases the booking's seats. Cancelling an already-cancelled
// booking is a no-op so the seat counter is only decremented once.
func (s BookingService) Cancel(id int64) error {
	utils.LogEvent(s.RequestID, "booking", "cancel", "id="+strconv.FormatInt(id, 10))

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	var spotID int64
	var seats int
	var status string
	err = tx.QueryRow(`SELECT spot_id, seats, status FROM bookings WHERE id = ? FOR UPDATE`, id).
		Scan(&spotID, &seats, &status)
	if err == sql.ErrNoRows {
		return domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if status == models.BookingStatusCancelled {
		return nil
	}

	if err := s.bookings().UpdateStatus(tx, id, models.BookingStatusCancelled); err != nil {
		return err
	}
	if err := s.spots().ReleaseSeats(tx, spotID, seats); err != nil {
		return domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}

	metrics.IncBookingCancelled()
	return nil
}

// UpdateStatus handles the dashboard status dropdown. Cancellation routes
// through Cancel so seats are released exactly once.
func (s BookingService) UpdateStatus(id int64, status string) error {
	status = strings.TrimSpace(status)
	switch status {
	case models.BookingStatusCancelled:
		return s.Cancel(id)
	case models.BookingStatusPending, models.BookingStatusConfirmed:
	default:
		return domain.ValidationError{Field: "status", Msg: "unknown status " + status}
	}

	booking, err := s.bookings().GetByID(id)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingStatusCancelled {
		return domain.ConflictError{Resource: "booking", Msg: "cancelled bookings cannot be reopened"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	if err := s.bookings().UpdateStatus(tx, id, status); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceTravelers swaps the traveler list. Counts are not forced to match
// the seat count; the capacity view reports the mismatch instead.
func (s BookingService) ReplaceTravelers(bookingID int64, travelers []models.Traveler) ([]models.Traveler, error) {
	booking, err := s.bookings().GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, domain.ConflictError{Resource: "booking", Msg: "cannot edit travelers of a cancelled booking"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	if err := s.travelers().ReplaceForBooking(tx, bookingID, travelers); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return nil, domain.InternalError{Err: err}
	}

	return s.travelers().ListByBooking(bookingID)
}

// Detail assembles the booking page payload.
func (s BookingService) Detail(id int64) (models.BookingDetail, error) {
	booking, err := s.bookings().GetByID(id)
	if err != nil {
		return models.BookingDetail{}, err
	}

	out := models.BookingDetail{Booking: booking, Travelers: []models.Traveler{}, Payments: []models.Payment{}}

	if spot, err := s.spots().GetByID(booking.SpotID); err == nil {
		out.Spot = &spot
	}
	if travelers, err := s.travelers().ListByBooking(id); err == nil {
		out.Travelers = travelers
	}
	if payments, err := s.payments().ListByBooking(id); err == nil {
		out.Payments = payments
	}
	return out, nil
}
