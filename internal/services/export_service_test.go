package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourops/internal/repositories"
)

func TestExportBookingsCSV(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{
		"id", "reference", "spot_id", "spot_name", "tour_name", "customer_id", "customer_name",
		"seats", "total_amount", "status", "channel", "notes", "created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT(?s).+FROM bookings b").
		WithArgs("confirmed").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "b7f1c9d2", 7, "June departure", "Komodo Trip", 5, "Jane Roe",
				2, 500000, "confirmed", "dashboard", "", "2026-06-01 10:00:00", "").
			AddRow(1, "a03e55f0", 7, "June departure", "Komodo Trip", 6, "John Doe",
				1, 250000, "confirmed", "public", "", "2026-05-30 08:30:00", ""))

	svc := ExportService{BookingRepo: repositories.BookingRepository{DB: db}}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteBookingsCSV(&buf, repositories.BookingFilter{Status: "confirmed"}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, bookingCSVHeader, records[0])
	assert.Equal(t, []string{
		"b7f1c9d2", "Komodo Trip", "June departure", "Jane Roe",
		"2", "500000", "confirmed", "dashboard", "2026-06-01 10:00:00",
	}, records[1])
	assert.Equal(t, "a03e55f0", records[2][0])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportBookingsCSVEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT(?s).+FROM bookings b").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := ExportService{BookingRepo: repositories.BookingRepository{DB: db}}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteBookingsCSV(&buf, repositories.BookingFilter{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
	require.NoError(t, mock.ExpectationsWereMet())
}
