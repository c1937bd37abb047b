package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"tourops/internal/repositories"
	"tourops/internal/utils"
)

// DocsService renders the booking voucher and invoice PDFs.
type DocsService struct {
	BookingRepo  repositories.BookingRepository
	TravelerRepo repositories.TravelerRepository
	PaymentRepo  repositories.PaymentRepository
	RequestID    string
	Loader       func(int64) (bookingDocData, error)
}

type bookingDocData struct {
	BookingID    int64
	Reference    string
	TourName     string
	SpotName     string
	CustomerName string
	Seats        int
	TotalAmount  int64
	PaidAmount   int64
	Status       string
	Travelers    []string
	CreatedAt    string
}

func (s DocsService) GenerateVoucher(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_voucher", fmt.Sprintf("booking_id=%d", bookingID))
	return buildVoucherPDF(data)
}

func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	data, err := s.loadBookingDocData(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadBookingDocData(bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}

	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return bookingDocData{}, err
	}

	out := bookingDocData{
		BookingID:    booking.ID,
		Reference:    booking.Reference,
		TourName:     booking.TourName,
		SpotName:     booking.SpotName,
		CustomerName: booking.CustomerName,
		Seats:        booking.Seats,
		TotalAmount:  booking.TotalAmount,
		Status:       booking.Status,
		CreatedAt:    booking.CreatedAt,
	}

	if travelers, err := s.TravelerRepo.ListByBooking(bookingID); err == nil {
		for _, t := range travelers {
			out.Travelers = append(out.Travelers, t.FullName)
		}
	}
	if paid, err := s.PaymentRepo.CompletedTotal(bookingID); err == nil {
		out.PaidAmount = paid
	}
	return out, nil
}

func buildVoucherPDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING VOUCHER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference   : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Tour        : %s", safe(d.TourName, "-")),
		fmt.Sprintf("Departure   : %s", safe(d.SpotName, "-")),
		fmt.Sprintf("Booked by   : %s", safe(d.CustomerName, "-")),
		fmt.Sprintf("Seats       : %d", d.Seats),
		fmt.Sprintf("Status      : %s", safe(d.Status, "-")),
		fmt.Sprintf("Booked at   : %s", safe(d.CreatedAt, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if len(d.Travelers) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Travelers:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for i, name := range d.Travelers {
			pdf.Cell(0, 6, fmt.Sprintf("%d) %s", i+1, name))
			pdf.Ln(6)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this voucher at departure. Valid for the listed travelers only.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("VOUCHER_%d_%s.pdf", d.BookingID, safeFilenamePart(d.Reference))
	return buf.Bytes(), filename, nil
}

func buildInvoicePDF(d bookingDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%s", d.BookingID, safeFilenamePart(d.Reference))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, safe(d.CustomerName, "-"))
	pdf.Ln(10)

	desc := fmt.Sprintf("%s / %s, %d seat(s)", safe(d.TourName, "-"), safe(d.SpotName, "-"), d.Seats)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Total   : "+utils.FormatAmount(d.TotalAmount))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Paid    : "+utils.FormatAmount(d.PaidAmount))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Balance : "+utils.FormatAmount(d.TotalAmount-d.PaidAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This invoice covers the booking referenced above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", d.BookingID, safeFilenamePart(d.Reference))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
