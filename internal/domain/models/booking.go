package models

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID           int64  `json:"id"`
	Reference    string `json:"reference"`
	SpotID       int64  `json:"spotId"`
	SpotName     string `json:"spotName,omitempty"`
	TourName     string `json:"tourName,omitempty"`
	CustomerID   int64  `json:"customerId"`
	CustomerName string `json:"customerName,omitempty"`
	Seats        int    `json:"seats"`
	TotalAmount  int64  `json:"totalAmount"`
	Status       string `json:"status"`
	Channel      string `json:"channel,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// BookingDetail is the booking page payload: the booking plus its spot,
// travelers and payments.
type BookingDetail struct {
	Booking
	Spot      *Spot      `json:"spot,omitempty"`
	Travelers []Traveler `json:"travelers"`
	Payments  []Payment  `json:"payments"`
}

type Traveler struct {
	ID           int64  `json:"id"`
	BookingID    int64  `json:"bookingId"`
	FullName     string `json:"fullName"`
	Nationality  string `json:"nationality"`
	DateOfBirth  string `json:"dateOfBirth"`
	Age          int    `json:"age,omitempty"`
	Requirements string `json:"requirements,omitempty"`
}

type Customer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BookingCount int    `json:"bookingCount,omitempty"`
	CreatedAt    string `json:"createdAt"`
}
