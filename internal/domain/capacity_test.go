package domain

import "testing"

func travelers(counts ...int) []BookingSummary {
	out := make([]BookingSummary, 0, len(counts))
	for i, n := range counts {
		out = append(out, BookingSummary{ID: int64(i + 1), Status: "confirmed", Seats: n, TravelerCount: n})
	}
	return out
}

func TestComputeSpotCapacityFullSpot(t *testing.T) {
	got := ComputeSpotCapacity(8, 8, travelers(8))
	if got.Status != SpotStatusFull {
		t.Fatalf("status = %q, want Full", got.Status)
	}
	if got.AvailableSeats != 0 {
		t.Fatalf("availableSeats = %d, want 0", got.AvailableSeats)
	}
	if got.Mismatch {
		t.Fatalf("mismatch should be false for 8 booked / 8 travelers")
	}
	if got.OverBooked {
		t.Fatalf("a full spot is not over-booked")
	}
}

func TestComputeSpotCapacityMismatch(t *testing.T) {
	// 5 seat units booked but only 4 travelers listed across two bookings.
	got := ComputeSpotCapacity(8, 5, travelers(3, 1))
	if got.AvailableSeats != 3 {
		t.Fatalf("availableSeats = %d, want 3", got.AvailableSeats)
	}
	if got.Status != SpotStatusAvailable {
		t.Fatalf("status = %q, want Available", got.Status)
	}
	if got.TravelerCount != 4 {
		t.Fatalf("travelerCount = %d, want 4", got.TravelerCount)
	}
	if !got.Mismatch {
		t.Fatalf("expected mismatch for 5 booked vs 4 travelers")
	}
}

func TestComputeSpotCapacityEmpty(t *testing.T) {
	got := ComputeSpotCapacity(10, 0, []BookingSummary{})
	if got.AvailableSeats != 10 || got.Status != SpotStatusAvailable || got.Mismatch {
		t.Fatalf("unexpected view for empty spot: %+v", got)
	}
}

func TestComputeSpotCapacityNilBookings(t *testing.T) {
	got := ComputeSpotCapacity(10, 2, nil)
	if got.TravelerCount != 0 {
		t.Fatalf("travelerCount = %d, want 0 for nil bookings", got.TravelerCount)
	}
	if !got.Mismatch {
		t.Fatalf("2 booked seats with no travelers listed must mismatch")
	}
}

func TestComputeSpotCapacityOverBooked(t *testing.T) {
	got := ComputeSpotCapacity(5, 6, travelers(6))
	if got.AvailableSeats != -1 {
		t.Fatalf("availableSeats = %d, want -1 (not clamped)", got.AvailableSeats)
	}
	if !got.OverBooked {
		t.Fatalf("expected overBooked flag for 6/5")
	}
	if got.Status != SpotStatusFull {
		t.Fatalf("status = %q, want Full", got.Status)
	}
}

func TestComputeSpotCapacityIdempotent(t *testing.T) {
	in := travelers(2, 3)
	first := ComputeSpotCapacity(12, 5, in)
	second := ComputeSpotCapacity(12, 5, in)
	if first != second {
		t.Fatalf("recompute differs: %+v vs %+v", first, second)
	}
}

func TestOverlayStoredStatus(t *testing.T) {
	view := ComputeSpotCapacity(8, 3, nil)
	kept := OverlayStoredStatus(view, SpotStatusAvailable)
	if kept.Status != SpotStatusAvailable {
		t.Fatalf("stored Available must not override derived status")
	}
	departed := OverlayStoredStatus(view, SpotStatusDeparted)
	if departed.Status != SpotStatusDeparted {
		t.Fatalf("stored Departed must win over derived status")
	}
}
