package handlers

import (
	"context"
	"net/http"
	"strings"

	"tourops/internal/cache"
	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

var catalogCache *cache.Cache

const catalogCacheKey = "public:tours"

// SetCache installs the shared redis cache. A nil cache disables caching.
func SetCache(c *cache.Cache) {
	catalogCache = c
}

// InvalidateCatalogCache drops the cached public catalog after admin edits.
func InvalidateCatalogCache() {
	catalogCache.Invalidate(context.Background(), catalogCacheKey)
}

// GET /api/public/tours
func GetPublicTours(c *gin.Context) {
	var tours []models.Tour
	if catalogCache.GetJSON(c.Request.Context(), catalogCacheKey, &tours) {
		c.JSON(http.StatusOK, gin.H{"tours": tours})
		return
	}

	repo := repositories.TourRepository{}
	tours, err := repo.ListPublished()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list tours", err)
		return
	}
	catalogCache.SetJSON(c.Request.Context(), catalogCacheKey, tours)
	c.JSON(http.StatusOK, gin.H{"tours": tours})
}

// GET /api/public/tours/:slug
// Tour page payload: the tour, its open spots with live availability and the
// approved reviews.
func GetPublicTourBySlug(c *gin.Context) {
	repo := repositories.TourRepository{}
	tour, err := repo.GetBySlug(strings.TrimSpace(c.Param("slug")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if tour.Status != models.TourStatusPublished {
		RespondError(c, http.StatusNotFound, "tour not found", nil)
		return
	}

	svc := services.SpotService{RequestID: middleware.GetRequestID(c)}
	spots, err := svc.ListViews(repositories.SpotFilter{TourID: tour.ID})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// departed spots are history, not bookable inventory
	open := make([]models.SpotView, 0, len(spots))
	for _, sp := range spots {
		if sp.Status != domain.SpotStatusDeparted {
			open = append(open, sp)
		}
	}

	reviewRepo := repositories.ReviewRepository{}
	reviews, err := reviewRepo.ListApprovedByTour(tour.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tour":    tour,
		"spots":   open,
		"reviews": reviews,
	})
}

// GET /api/public/profile
func GetPublicProfile(c *gin.Context) {
	repo := repositories.ProfileRepository{}
	profile, err := repo.Get()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type publicBookingRequest struct {
	SpotID    int64             `json:"spotId"`
	Customer  models.Customer   `json:"customer"`
	Seats     int               `json:"seats"`
	Notes     string            `json:"notes"`
	Travelers []models.Traveler `json:"travelers"`
}

// POST /api/public/bookings
// Public bookings always start pending; staff confirm after payment.
func CreatePublicBooking(c *gin.Context) {
	var req publicBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	booking, err := svc.Create(services.CreateBookingInput{
		SpotID:    req.SpotID,
		Customer:  req.Customer,
		Seats:     req.Seats,
		Status:    models.BookingStatusPending,
		Channel:   "public",
		Notes:     req.Notes,
		Travelers: req.Travelers,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"reference": booking.Reference,
		"booking":   booking,
	})
}
