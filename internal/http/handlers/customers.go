package handlers

import (
	"net/http"
	"strings"

	"tourops/internal/domain/models"
	"tourops/internal/repositories"
	"tourops/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/customers
func GetCustomers(c *gin.Context) {
	repo := repositories.CustomerRepository{}
	customers, err := repo.List(strings.TrimSpace(c.Query("search")))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list customers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GET /api/customers/:id
func GetCustomerByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.CustomerRepository{}
	customer, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// POST /api/customers
func CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if !BindJSONOrError(c, &customer) {
		return
	}
	customer.Name = utils.NormalizeSpace(customer.Name)
	if customer.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	repo := repositories.CustomerRepository{}
	id, err := repo.Create(customer)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save customer", err)
		return
	}
	created, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var customer models.Customer
	if !BindJSONOrError(c, &customer) {
		return
	}
	customer.ID = id
	customer.Name = utils.NormalizeSpace(customer.Name)
	if customer.Name == "" {
		RespondError(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	repo := repositories.CustomerRepository{}
	if err := repo.Update(customer); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	repo := repositories.CustomerRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}
