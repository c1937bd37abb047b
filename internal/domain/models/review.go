package models

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

type Review struct {
	ID           int64  `json:"id"`
	TourID       int64  `json:"tourId"`
	TourName     string `json:"tourName,omitempty"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// OperatorProfile is the single-row company profile shown on the public site.
type OperatorProfile struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"companyName"`
	Tagline     string `json:"tagline"`
	About       string `json:"about"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Website     string `json:"website"`
	LogoURL     string `json:"logoUrl"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// EmailOutbox rows are queued by the spot email endpoint; delivery itself is
// handled outside this service.
type EmailOutbox struct {
	ID        int64  `json:"id"`
	SpotID    int64  `json:"spotId"`
	Scope     string `json:"scope"` // all | confirmed | pending
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
