package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
)

func newSpotService(t *testing.T) (SpotService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock init")
	t.Cleanup(func() { db.Close() })
	return SpotService{DB: db}, mock
}

func spotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tour_id", "tour_name", "name", "departure_date", "return_date",
		"max_seats", "booked_seats", "status", "notes", "created_at",
	})
}

func TestSpotListViewsComputesCapacity(t *testing.T) {
	svc, mock := newSpotService(t)

	mock.ExpectQuery("SELECT(?s).+FROM spots s").
		WillReturnRows(spotRows().
			AddRow(1, 10, "Komodo Trip", "June departure", "2026-06-01", "2026-06-04", 8, 5, "Available", "", "2026-01-01 10:00:00").
			AddRow(2, 10, "Komodo Trip", "July departure", "2026-07-01", "", 8, 8, "Full", "", "2026-01-02 10:00:00"))

	mock.ExpectQuery("SELECT b.spot_id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"spot_id", "id", "status", "seats", "count"}).
			AddRow(1, 100, "confirmed", 3, 3).
			AddRow(1, 101, "pending", 2, 1).
			AddRow(2, 102, "confirmed", 8, 8))

	views, err := svc.ListViews(repositories.SpotFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	first := views[0]
	assert.Equal(t, 3, first.AvailableSeats)
	assert.Equal(t, 4, first.TravelerCount)
	assert.True(t, first.Mismatch, "5 booked vs 4 travelers must mismatch")
	assert.Equal(t, domain.SpotStatusAvailable, first.Status)

	second := views[1]
	assert.Equal(t, 0, second.AvailableSeats)
	assert.False(t, second.Mismatch)
	assert.Equal(t, domain.SpotStatusFull, second.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotUpdateRefusesShrinkBelowBooked(t *testing.T) {
	svc, mock := newSpotService(t)

	mock.ExpectQuery("SELECT(?s).+FROM spots s").
		WithArgs(int64(1)).
		WillReturnRows(spotRows().
			AddRow(1, 10, "Komodo Trip", "June departure", "2026-06-01", "", 8, 5, "Available", "", "2026-01-01 10:00:00"))

	_, err := svc.Update(models.Spot{
		ID:            1,
		TourID:        10,
		Name:          "June departure",
		DepartureDate: "2026-06-01",
		MaxSeats:      4, // below the 5 already booked
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotDeleteGuardedByActiveBookings(t *testing.T) {
	svc, mock := newSpotService(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := svc.Delete(3)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotSweepDeparted(t *testing.T) {
	svc, mock := newSpotService(t)

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)
	mock.ExpectExec("SET status = 'Departed'").
		WithArgs("2026-08-31").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := svc.SweepDeparted(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotQueueEmailValidatesScope(t *testing.T) {
	svc, mock := newSpotService(t)

	mock.ExpectQuery("SELECT(?s).+FROM spots s").
		WithArgs(int64(1)).
		WillReturnRows(spotRows().
			AddRow(1, 10, "Komodo Trip", "June departure", "2026-06-01", "", 8, 5, "Available", "", "2026-01-01 10:00:00"))

	_, err := svc.QueueEmail(1, "everyone", "Subject", "Body")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err), "got %v", err)
}

func TestSpotValidate(t *testing.T) {
	err := validateSpot(models.Spot{TourID: 1, Name: "x", DepartureDate: "2026-06-01", MaxSeats: 0})
	assert.True(t, domain.IsValidation(err), "maxSeats must be positive")

	err = validateSpot(models.Spot{TourID: 1, Name: "x", DepartureDate: "June 1st", MaxSeats: 4})
	assert.True(t, domain.IsValidation(err), "bad date format")

	err = validateSpot(models.Spot{TourID: 1, Name: "x", DepartureDate: "2026-06-01", MaxSeats: 4})
	assert.NoError(t, err)
}
