package domain

// Spot statuses. "Departed" is set by the sweep job (never derived here),
// the other two are derived from seat counts.
const (
	SpotStatusAvailable = "Available"
	SpotStatusFull      = "Full"
	SpotStatusDeparted  = "Departed"
)

// BookingSummary is the slice of a booking the capacity view needs.
type BookingSummary struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	Seats         int    `json:"seats"`
	TravelerCount int    `json:"travelerCount"`
}

// SpotCapacity is the computed availability view for one spot.
type SpotCapacity struct {
	MaxSeats       int  `json:"maxSeats"`
	BookedSeats    int  `json:"bookedSeats"`
	AvailableSeats int  `json:"availableSeats"`
	TravelerCount  int  `json:"travelerCount"`
	Mismatch       bool `json:"mismatch"`
	OverBooked     bool `json:"overBooked"`

	Status string `json:"status"`
}

// ComputeSpotCapacity derives seat availability and the booked-seats vs
// traveler-count reconciliation for a spot. Pure; bookings may be nil.
// AvailableSeats is not clamped: a negative value means the stored counters
// are over capacity and is surfaced via OverBooked instead of being hidden.
func ComputeSpotCapacity(maxSeats, bookedSeats int, bookings []BookingSummary) SpotCapacity {
	travelers := 0
	for _, b := range bookings {
		travelers += b.TravelerCount
	}

	status := SpotStatusAvailable
	if bookedSeats >= maxSeats {
		status = SpotStatusFull
	}

	return SpotCapacity{
		MaxSeats:       maxSeats,
		BookedSeats:    bookedSeats,
		AvailableSeats: maxSeats - bookedSeats,
		TravelerCount:  travelers,
		Mismatch:       bookedSeats != travelers,
		OverBooked:     bookedSeats > maxSeats,
		Status:         status,
	}
}

// OverlayStoredStatus keeps a stored Departed status authoritative over the
// derived Available/Full value.
func OverlayStoredStatus(derived SpotCapacity, stored string) SpotCapacity {
	if stored == SpotStatusDeparted {
		derived.Status = SpotStatusDeparted
	}
	return derived
}
