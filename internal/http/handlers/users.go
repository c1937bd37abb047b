package handlers

import (
	"net/http"
	"strings"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func validRole(role string) bool {
	switch role {
	case models.RoleOwner, models.RoleAdmin, models.RoleStaff:
		return true
	default:
		return false
	}
}

// GET /api/users
func GetUsers(c *gin.Context) {
	repo := repositories.UserRepository{}
	users, err := repo.List()
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.UserRepository{}
	user, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type createUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		RespondError(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleStaff
	}
	if !validRole(role) {
		RespondError(c, http.StatusBadRequest, "role must be owner, admin or staff", nil)
		return
	}

	repo := repositories.UserRepository{}
	exists, err := repo.Exists(req.Email, req.Username)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to check user", err)
		return
	}
	if exists {
		RespondError(c, http.StatusConflict, "email or username already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     role,
		Status:   "active",
	}
	id, err := repo.Create(user, string(hash))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save user", err)
		return
	}
	user.ID = id
	c.JSON(http.StatusCreated, user)
}

type updateUserRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.UserRepository{}
	user, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if strings.TrimSpace(req.Name) != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Phone) != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}
	if role := strings.ToLower(strings.TrimSpace(req.Role)); role != "" {
		if !validRole(role) {
			RespondError(c, http.StatusBadRequest, "role must be owner, admin or staff", nil)
			return
		}
		user.Role = role
	}
	if status := strings.ToLower(strings.TrimSpace(req.Status)); status != "" {
		user.Status = status
	}

	if err := repo.Update(user); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.UserRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
