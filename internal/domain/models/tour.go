package models

// Tour statuses used by the admin dashboard and the public catalog.
const (
	TourStatusDraft     = "draft"
	TourStatusPublished = "published"
	TourStatusArchived  = "archived"
)

type Tour struct {
	ID           int64   `json:"id"`
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName,omitempty"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Summary      string  `json:"summary"`
	Description  string  `json:"description"`
	BasePrice    int64   `json:"basePrice"`
	DurationDays int     `json:"durationDays"`
	Status       string  `json:"status"`
	Rating       float64 `json:"rating,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
}

type Category struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	TourCount int    `json:"tourCount,omitempty"`
}
