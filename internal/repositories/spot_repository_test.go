package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tourops/internal/domain"
)

func TestReserveSeatsSucceedsWithinCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE spots").
		WithArgs(2, 2, int64(7), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := SpotRepository{DB: db}
	if err := repo.ReserveSeats(db, 7, 2); err != nil {
		t.Fatalf("expected reservation to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsConflictWhenFull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// conditional update touches no row when the spot is full or departed
	mock.ExpectExec("UPDATE spots").
		WithArgs(4, 4, int64(7), 4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := SpotRepository{DB: db}
	err = repo.ReserveSeats(db, 7, 4)
	if err == nil {
		t.Fatalf("expected conflict for over-capacity reservation")
	}
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %T: %v", err, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsRejectsNonPositiveCount(t *testing.T) {
	repo := SpotRepository{}
	if err := repo.ReserveSeats(nil, 7, 0); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero seats, got %v", err)
	}
}

func TestReleaseSeatsNeverGoesNegative(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// GREATEST(...) clamp lives in the statement; the repo just executes it
	mock.ExpectExec("GREATEST\\(booked_seats - \\?, 0\\)").
		WithArgs(3, 3, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := SpotRepository{DB: db}
	if err := repo.ReleaseSeats(db, 9, 3); err != nil {
		t.Fatalf("release error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkDepartedReturnsAffectedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("SET status = 'Departed'").
		WithArgs("2026-08-31").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := SpotRepository{DB: db}
	n, err := repo.MarkDeparted("2026-08-31")
	if err != nil {
		t.Fatalf("MarkDeparted error: %v", err)
	}
	if n != 3 {
		t.Fatalf("affected = %d, want 3", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingSummariesGroupsBySpot(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"spot_id", "id", "status", "seats", "count"}).
		AddRow(1, 10, "confirmed", 3, 3).
		AddRow(1, 11, "pending", 1, 1).
		AddRow(2, 12, "confirmed", 2, 2)
	mock.ExpectQuery("SELECT b.spot_id").WithArgs(int64(1), int64(2)).WillReturnRows(rows)

	repo := SpotRepository{DB: db}
	got, err := repo.BookingSummaries([]int64{1, 2})
	if err != nil {
		t.Fatalf("BookingSummaries error: %v", err)
	}
	if len(got[1]) != 2 || len(got[2]) != 1 {
		t.Fatalf("unexpected grouping: %+v", got)
	}
	if got[1][0].TravelerCount != 3 {
		t.Fatalf("traveler count = %d, want 3", got[1][0].TravelerCount)
	}
}
