package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/reviews
func GetReviews(c *gin.Context) {
	f := repositories.ReviewFilter{Status: strings.TrimSpace(c.Query("status"))}
	if raw := c.Query("tourId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.TourID = id
		}
	}

	repo := repositories.ReviewRepository{}
	reviews, err := repo.List(f)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type reviewStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/reviews/:id/status
func UpdateReviewStatus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req reviewStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected:
	default:
		RespondError(c, http.StatusBadRequest, "status must be pending, approved or rejected", nil)
		return
	}

	repo := repositories.ReviewRepository{}
	if err := repo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// DELETE /api/reviews/:id
func DeleteReview(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.ReviewRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// POST /api/public/tours/:slug/reviews
// Public submissions land as pending until an admin approves them.
func CreatePublicReview(c *gin.Context) {
	tours := repositories.TourRepository{}
	tour, err := tours.GetBySlug(strings.TrimSpace(c.Param("slug")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var review models.Review
	if !BindJSONOrError(c, &review) {
		return
	}
	review.TourID = tour.ID
	review.Status = models.ReviewStatusPending

	if strings.TrimSpace(review.CustomerName) == "" {
		RespondError(c, http.StatusBadRequest, "customerName is required", nil)
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		RespondError(c, http.StatusBadRequest, "rating must be between 1 and 5", nil)
		return
	}

	repo := repositories.ReviewRepository{}
	id, err := repo.Create(review)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save review", err)
		return
	}
	review.ID = id
	c.JSON(http.StatusCreated, review)
}
