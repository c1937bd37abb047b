package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"tourops/internal/domain/models"
	"tourops/internal/http/middleware"
	"tourops/internal/repositories"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

func spotService(c *gin.Context) services.SpotService {
	return services.SpotService{RequestID: middleware.GetRequestID(c)}
}

func spotFilterFromQuery(c *gin.Context) repositories.SpotFilter {
	f := repositories.SpotFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("tourId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			f.TourID = id
		}
	}
	return f
}

// GET /api/tours/spots
// Each spot comes back with availableSeats, travelerCount, mismatch and
// overBooked recomputed from live bookings.
func GetSpots(c *gin.Context) {
	views, err := spotService(c).ListViews(spotFilterFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": views})
}

// GET /api/tours/spots/:id
func GetSpotByID(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	view, err := spotService(c).View(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/spots
func CreateSpot(c *gin.Context) {
	var spot models.Spot
	if !BindJSONOrError(c, &spot) {
		return
	}
	created, err := spotService(c).Create(spot)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/tours/spots/:id
func UpdateSpot(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var spot models.Spot
	if !BindJSONOrError(c, &spot) {
		return
	}
	spot.ID = id
	updated, err := spotService(c).Update(spot)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/tours/spots/:id
func DeleteSpot(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	if err := spotService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "spot deleted"})
}

type spotEmailRequest struct {
	Scope   string `json:"scope"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// POST /api/tours/spots/:id/email
func QueueSpotEmail(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	var req spotEmailRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	msg, err := spotService(c).QueueEmail(id, req.Scope, req.Subject, req.Body)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, msg)
}

// GET /api/tours/spots/:id/emails
func GetSpotEmails(c *gin.Context) {
	id, ok := ParamID(c)
	if !ok {
		return
	}
	emails, err := spotService(c).ListEmails(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"emails": emails})
}

// POST /api/tours/spots/sweep
// Manual trigger for the departed sweep, same as the background ticker.
func SweepDepartedSpots(c *gin.Context) {
	n, err := spotService(c).SweepDeparted(time.Now())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departed": n})
}
