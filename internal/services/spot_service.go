package services

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"tourops/internal/config"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/metrics"
	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// SpotService coordinates spot lifecycle and the capacity view assembly.
type SpotService struct {
	DB          *sql.DB
	SpotRepo    repositories.SpotRepository
	BookingRepo repositories.BookingRepository
	OutboxRepo  repositories.OutboxRepository
	RequestID   string
}

func (s SpotService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return config.DB
}

func (s SpotService) spots() repositories.SpotRepository {
	if s.SpotRepo.DB != nil {
		return s.SpotRepo
	}
	return repositories.SpotRepository{DB: s.db()}
}

func (s SpotService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s SpotService) outbox() repositories.OutboxRepository {
	if s.OutboxRepo.DB != nil {
		return s.OutboxRepo
	}
	return repositories.OutboxRepository{DB: s.db()}
}

// ListViews loads spots with their recomputed capacity view. Summaries for
// all spots come back in one query to keep the dashboard list cheap.
func (s SpotService) ListViews(f repositories.SpotFilter) ([]models.SpotView, error) {
	spots, err := s.spots().List(f)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	ids := make([]int64, 0, len(spots))
	for _, sp := range spots {
		ids = append(ids, sp.ID)
	}
	summaries, err := s.spots().BookingSummaries(ids)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	views := make([]models.SpotView, 0, len(spots))
	for _, sp := range spots {
		views = append(views, sp.Capacity(summaries[sp.ID]))
	}
	return views, nil
}

// View loads one spot with its capacity view.
func (s SpotService) View(id int64) (models.SpotView, error) {
	spot, err := s.spots().GetByID(id)
	if err != nil {
		return models.SpotView{}, err
	}
	summaries, err := s.spots().BookingSummaries([]int64{id})
	if err != nil {
		return models.SpotView{}, domain.InternalError{Err: err}
	}
	return spot.Capacity(summaries[id]), nil
}

func validateSpot(sp models.Spot) error {
	if sp.TourID <= 0 {
		return domain.ValidationError{Field: "tourId", Msg: "required"}
	}
	if strings.TrimSpace(sp.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if sp.MaxSeats <= 0 {
		return domain.ValidationError{Field: "maxSeats", Msg: "must be positive"}
	}
	if _, err := utils.ParseDate(sp.DepartureDate); err != nil {
		return domain.ValidationError{Field: "departureDate", Msg: "must be YYYY-MM-DD"}
	}
	if strings.TrimSpace(sp.ReturnDate) != "" {
		if _, err := utils.ParseDate(sp.ReturnDate); err != nil {
			return domain.ValidationError{Field: "returnDate", Msg: "must be YYYY-MM-DD"}
		}
	}
	return nil
}

func (s SpotService) Create(sp models.Spot) (models.Spot, error) {
	if err := validateSpot(sp); err != nil {
		return models.Spot{}, err
	}
	id, err := s.spots().Create(sp)
	if err != nil {
		return models.Spot{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "spot", "create", "id="+strconv.FormatInt(id, 10))
	return s.spots().GetByID(id)
}

// Update edits spot attributes. Shrinking max_seats below booked_seats is
// refused; the dashboard must cancel bookings first.
func (s SpotService) Update(sp models.Spot) (models.Spot, error) {
	if err := validateSpot(sp); err != nil {
		return models.Spot{}, err
	}
	existing, err := s.spots().GetByID(sp.ID)
	if err != nil {
		return models.Spot{}, err
	}
	if sp.MaxSeats < existing.BookedSeats {
		return models.Spot{}, domain.ConflictError{
			Resource: "spot",
			Msg:      "maxSeats cannot drop below " + strconv.Itoa(existing.BookedSeats) + " already-booked seats",
		}
	}
	if err := s.spots().Update(sp); err != nil {
		return models.Spot{}, err
	}
	return s.spots().GetByID(sp.ID)
}

// Delete refuses while non-cancelled bookings still reference the spot.
func (s SpotService) Delete(id int64) error {
	n, err := s.bookings().CountActiveBySpot(id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n > 0 {
		return domain.ConflictError{Resource: "spot", Msg: strconv.Itoa(n) + " active bookings reference this spot"}
	}
	return s.spots().Delete(id)
}

// QueueEmail records an email_outbox row for the spot's booked customers.
// Delivery belongs to an external worker.
func (s SpotService) QueueEmail(spotID int64, scope, subject, body string) (models.EmailOutbox, error) {
	if _, err := s.spots().GetByID(spotID); err != nil {
		return models.EmailOutbox{}, err
	}
	scope = strings.ToLower(strings.TrimSpace(scope))
	switch scope {
	case "":
		scope = "all"
	case "all", models.BookingStatusConfirmed, models.BookingStatusPending:
	default:
		return models.EmailOutbox{}, domain.ValidationError{Field: "scope", Msg: "must be all, confirmed or pending"}
	}
	if strings.TrimSpace(subject) == "" {
		return models.EmailOutbox{}, domain.ValidationError{Field: "subject", Msg: "required"}
	}

	msg := models.EmailOutbox{SpotID: spotID, Scope: scope, Subject: strings.TrimSpace(subject), Body: body}
	id, err := s.outbox().Enqueue(msg)
	if err != nil {
		return models.EmailOutbox{}, domain.InternalError{Err: err}
	}
	msg.ID = id
	msg.Status = "queued"
	msg.CreatedAt = utils.FormatDateTime(time.Now())
	utils.LogEvent(s.RequestID, "spot", "queue_email", "spot_id="+strconv.FormatInt(spotID, 10)+" scope="+scope)
	return msg, nil
}

// ListEmails returns the queued emails for a spot, newest first.
func (s SpotService) ListEmails(spotID int64) ([]models.EmailOutbox, error) {
	if _, err := s.spots().GetByID(spotID); err != nil {
		return nil, err
	}
	list, err := s.outbox().ListBySpot(spotID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return list, nil
}

// SweepDeparted flips past-departure spots to Departed. Runs from the
// background ticker and the manual admin endpoint.
func (s SpotService) SweepDeparted(now time.Time) (int64, error) {
	n, err := s.spots().MarkDeparted(utils.FormatDate(now))
	if err != nil {
		utils.LogEvent(s.RequestID, "spot", "sweep_error", err.Error())
		return 0, domain.InternalError{Err: err}
	}
	if n > 0 {
		utils.LogEvent(s.RequestID, "spot", "sweep_done", "departed="+strconv.FormatInt(n, 10))
	}
	metrics.AddSpotsDeparted(n)
	return n, nil
}
