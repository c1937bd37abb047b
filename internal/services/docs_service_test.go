package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourops/internal/domain"
)

func docsFixture() bookingDocData {
	return bookingDocData{
		BookingID:    42,
		Reference:    "b7f1c9d2",
		TourName:     "Komodo Trip",
		SpotName:     "June departure",
		CustomerName: "Jane Roe",
		Seats:        2,
		TotalAmount:  500000,
		PaidAmount:   250000,
		Status:       "confirmed",
		Travelers:    []string{"Jane Roe", "John Roe"},
		CreatedAt:    "2026-06-01 10:00:00",
	}
}

func TestDocsGenerateVoucher(t *testing.T) {
	svc := DocsService{Loader: func(id int64) (bookingDocData, error) {
		assert.Equal(t, int64(42), id)
		return docsFixture(), nil
	}}

	pdf, filename, err := svc.GenerateVoucher(42)
	require.NoError(t, err)
	assert.Equal(t, "VOUCHER_42_b7f1c9d2.pdf", filename)
	require.True(t, len(pdf) > 500, "pdf payload too small: %d bytes", len(pdf))
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestDocsGenerateInvoice(t *testing.T) {
	svc := DocsService{Loader: func(int64) (bookingDocData, error) {
		return docsFixture(), nil
	}}

	pdf, filename, err := svc.GenerateInvoice(42)
	require.NoError(t, err)
	assert.Equal(t, "INVOICE_42_b7f1c9d2.pdf", filename)
	require.True(t, len(pdf) > 500, "pdf payload too small: %d bytes", len(pdf))
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestDocsGenerateMissingBooking(t *testing.T) {
	svc := DocsService{Loader: func(int64) (bookingDocData, error) {
		return bookingDocData{}, domain.NotFoundError{Resource: "booking"}
	}}

	_, _, err := svc.GenerateVoucher(99)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err), "got %v", err)
}

func TestDocsGenerateHandlesEmptyFields(t *testing.T) {
	svc := DocsService{Loader: func(int64) (bookingDocData, error) {
		return bookingDocData{BookingID: 7}, nil
	}}

	pdf, filename, err := svc.GenerateInvoice(7)
	require.NoError(t, err)
	assert.Equal(t, "INVOICE_7_NA.pdf", filename)
	assert.NotEmpty(t, pdf)
}

func TestDocsLoaderErrorPropagates(t *testing.T) {
	boom := errors.New("db gone")
	svc := DocsService{Loader: func(int64) (bookingDocData, error) {
		return bookingDocData{}, boom
	}}

	_, _, err := svc.GenerateInvoice(1)
	assert.ErrorIs(t, err, boom)
}
