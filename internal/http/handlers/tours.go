package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tourops/internal/domain"
	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

func tourFilterFromQuery(c *gin.Context) repositories.TourFilter {
	f := repositories.TourFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("categoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.CategoryID = id
		}
	}
	return f
}

// GET /api/tours
func GetTours(c *gin.Context) {
	repo := repositories.TourRepository{}
	tours, err := repo.List(tourFilterFromQuery(c))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list tours", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tours": tours})
}

// GET /api/tours/:id
func GetTourByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.TourRepository{}
	tour, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tour)
}

func validateTour(t models.Tour) error {
	if strings.TrimSpace(t.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if t.BasePrice < 0 {
		return domain.ValidationError{Field: "basePrice", Msg: "cannot be negative"}
	}
	if t.DurationDays < 0 {
		return domain.ValidationError{Field: "durationDays", Msg: "cannot be negative"}
	}
	return nil
}

// ensureTourSlug fills and deduplicates the slug from the tour name.
func ensureTourSlug(repo repositories.TourRepository, t *models.Tour) error {
	base := strings.TrimSpace(t.Slug)
	if base == "" {
		base = utils.Slugify(t.Name)
	} else {
		base = utils.Slugify(base)
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := repo.SlugExists(slug, t.ID)
		if err != nil {
			return err
		}
		if !exists {
			break
		}
		slug = base + "-" + strconv.Itoa(i)
	}
	t.Slug = slug
	return nil
}

// POST /api/tours
func CreateTour(c *gin.Context) {
	var tour models.Tour
	if !BindJSONOrError(c, &tour) {
		return
	}
	if err := validateTour(tour); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.TourRepository{}
	if err := ensureTourSlug(repo, &tour); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build slug", err)
		return
	}
	if strings.TrimSpace(tour.Status) == "" {
		tour.Status = models.TourStatusDraft
	}

	id, err := repo.Create(tour)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save tour", err)
		return
	}
	created, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	InvalidateCatalogCache()
	c.JSON(http.StatusCreated, created)
}

// PUT /api/tours/:id
func UpdateTour(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var tour models.Tour
	if !BindJSONOrError(c, &tour) {
		return
	}
	tour.ID = id
	if err := validateTour(tour); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.TourRepository{}
	if err := ensureTourSlug(repo, &tour); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build slug", err)
		return
	}
	if err := repo.Update(tour); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	InvalidateCatalogCache()
	c.JSON(http.StatusOK, updated)
}

type tourStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/tours/:id/status
func UpdateTourStatus(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req tourStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case models.TourStatusDraft, models.TourStatusPublished, models.TourStatusArchived:
	default:
		RespondError(c, http.StatusBadRequest, "status must be draft, published or archived", nil)
		return
	}

	repo := repositories.TourRepository{}
	if err := repo.UpdateStatus(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	InvalidateCatalogCache()
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// DELETE /api/tours/:id
func DeleteTour(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.TourRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	InvalidateCatalogCache()
	c.JSON(http.StatusOK, gin.H{"message": "tour deleted"})
}
