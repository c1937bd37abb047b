package models

// Payment statuses mirror the gateway vocabulary shown in the dashboard.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusRefunded  = "REFUNDED"
)

type Payment struct {
	ID             int64  `json:"id"`
	BookingID      int64  `json:"bookingId"`
	Amount         int64  `json:"amount"`
	Method         string `json:"method"`
	Status         string `json:"status"`
	TransactionRef string `json:"transactionRef"`
	PaidAt         string `json:"paidAt,omitempty"`
	CreatedAt      string `json:"createdAt"`
}

// ValidPaymentStatus reports whether s is one of the accepted payment states.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
