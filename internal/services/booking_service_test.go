package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
)

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock init")
	t.Cleanup(func() { db.Close() })
	return BookingService{DB: db}, mock
}

func TestBookingCreateReservesSeatsInOneTx(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE spots").
		WithArgs(2, 2, int64(7), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("DELETE FROM travelers").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO travelers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	booking, err := svc.Create(CreateBookingInput{
		SpotID:      7,
		CustomerID:  3,
		Seats:       2,
		TotalAmount: 500000,
		Status:      models.BookingStatusConfirmed,
		Travelers:   []models.Traveler{{FullName: "Ana Santos"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), booking.ID)
	assert.NotEmpty(t, booking.Reference)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateConflictRollsBack(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectBegin()
	// spot full: the conditional update touches no row
	mock.ExpectExec("UPDATE spots").
		WithArgs(4, 4, int64(7), 4).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Create(CreateBookingInput{
		SpotID:      7,
		CustomerID:  3,
		Seats:       4,
		TotalAmount: 100,
	})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err), "want ConflictError, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreatePricesFromTourBasePrice(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE spots").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COALESCE\\(t.base_price, 0\\)").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"base_price"}).AddRow(250000))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	booking, err := svc.Create(CreateBookingInput{SpotID: 7, CustomerID: 3, Seats: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(500000), booking.TotalAmount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateValidation(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Create(CreateBookingInput{SpotID: 0, CustomerID: 1, Seats: 1})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(CreateBookingInput{SpotID: 1, CustomerID: 1, Seats: 0})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Create(CreateBookingInput{SpotID: 1, Seats: 1})
	assert.True(t, domain.IsValidation(err), "missing customer should fail")

	_, err = svc.Create(CreateBookingInput{SpotID: 1, CustomerID: 1, Seats: 1, Status: "weird"})
	assert.True(t, domain.IsValidation(err))
}

func TestBookingCancelReleasesSeatsOnce(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT spot_id, seats, status FROM bookings").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"spot_id", "seats", "status"}).AddRow(7, 3, "confirmed"))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(models.BookingStatusCancelled, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("GREATEST\\(booked_seats - \\?, 0\\)").
		WithArgs(3, 3, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Cancel(5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCancelAlreadyCancelledIsNoop(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT spot_id, seats, status FROM bookings").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"spot_id", "seats", "status"}).AddRow(7, 3, "cancelled"))
	mock.ExpectRollback()

	// no release, no status update: seats were given back on the first cancel
	require.NoError(t, svc.Cancel(5))
	require.NoError(t, mock.ExpectationsWereMet())
}
