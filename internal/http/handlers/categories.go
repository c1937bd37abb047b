package handlers

import (
	"net/http"
	"strings"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/categories
func GetCategories(c *gin.Context) {
	repo := repositories.CategoryRepository{}
	categories, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// POST /api/categories
func CreateCategory(c *gin.Context) {
	var category models.Category
	if !BindJSONOrError(c, &category) {
		return
	}
	if strings.TrimSpace(category.Name) == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	if strings.TrimSpace(category.Slug) == "" {
		category.Slug = utils.Slugify(category.Name)
	}

	repo := repositories.CategoryRepository{}
	id, err := repo.Create(category)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save category", err)
		return
	}
	category.ID = id
	c.JSON(http.StatusCreated, category)
}

// PUT /api/categories/:id
func UpdateCategory(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var category models.Category
	if !BindJSONOrError(c, &category) {
		return
	}
	category.ID = id
	if strings.TrimSpace(category.Name) == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	if strings.TrimSpace(category.Slug) == "" {
		category.Slug = utils.Slugify(category.Name)
	}

	repo := repositories.CategoryRepository{}
	if err := repo.Update(category); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// DELETE /api/categories/:id
func DeleteCategory(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.CategoryRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
