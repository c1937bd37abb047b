package models

import "tourops/internal/domain"

// Spot is a single departure instance of a tour with its own capacity.
type Spot struct {
	ID            int64  `json:"id"`
	TourID        int64  `json:"tourId"`
	TourName      string `json:"tourName,omitempty"`
	Name          string `json:"name"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	MaxSeats      int    `json:"maxSeats"`
	BookedSeats   int    `json:"bookedSeats"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// SpotView is a spot plus its computed capacity fields and booking summaries,
// the shape the dashboard spot list consumes.
type SpotView struct {
	Spot
	AvailableSeats int                     `json:"availableSeats"`
	TravelerCount  int                     `json:"travelerCount"`
	Mismatch       bool                    `json:"mismatch"`
	OverBooked     bool                    `json:"overBooked"`
	Bookings       []domain.BookingSummary `json:"bookings"`
}

// Capacity recomputes the availability view from the stored counters,
// keeping a stored Departed status authoritative.
func (s Spot) Capacity(bookings []domain.BookingSummary) SpotView {
	view := domain.OverlayStoredStatus(domain.ComputeSpotCapacity(s.MaxSeats, s.BookedSeats, bookings), s.Status)
	out := SpotView{
		Spot:           s,
		AvailableSeats: view.AvailableSeats,
		TravelerCount:  view.TravelerCount,
		Mismatch:       view.Mismatch,
		OverBooked:     view.OverBooked,
		Bookings:       bookings,
	}
	out.Status = view.Status
	if out.Bookings == nil {
		out.Bookings = []domain.BookingSummary{}
	}
	return out
}
