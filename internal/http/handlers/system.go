package handlers

import (
	"net/http"

	intconfig "tourops/internal/config"
	intdb "tourops/internal/db"
	"tourops/internal/services"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "tourops backend running"})
}

func DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected: " + err.Error()})
		return
	}

	missing := []string{}
	for _, table := range []string{"users", "tours", "spots", "customers", "bookings", "travelers", "payments"} {
		if !intdb.HasTable(intconfig.DB, table) {
			missing = append(missing, table)
		}
	}

	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "database connection OK",
		"users_in_db":    count,
		"missing_tables": missing,
	})
}

// GET /api/reports/summary
func GetDashboardSummary(c *gin.Context) {
	svc := services.ReportsService{}
	summary, err := svc.Summary()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
