package handlers

import (
	"net/http"
	"strings"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/profile
func GetProfile(c *gin.Context) {
	repo := repositories.ProfileRepository{}
	profile, err := repo.Get()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/profile
func UpdateProfile(c *gin.Context) {
	var profile models.OperatorProfile
	if !BindJSONOrError(c, &profile) {
		return
	}
	if strings.TrimSpace(profile.CompanyName) == "" {
		RespondError(c, http.StatusBadRequest, "companyName is required", nil)
		return
	}

	repo := repositories.ProfileRepository{}
	if err := repo.Upsert(profile); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save profile", err)
		return
	}
	saved, err := repo.Get()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to reload profile", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
