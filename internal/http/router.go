package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "tourops/internal/config"
	"tourops/internal/domain/models"
	h "tourops/internal/http/handlers"
	"tourops/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsCfg.AllowCredentials = true
	corsCfg.MaxAge = 24 * time.Hour
	r.Use(cors.New(corsCfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Public site, no auth
		public := api.Group("/public")
		public.GET("/tours", h.GetPublicTours)
		public.GET("/tours/:slug", h.GetPublicTourBySlug)
		public.POST("/tours/:slug/reviews", h.CreatePublicReview)
		public.GET("/profile", h.GetPublicProfile)
		public.POST("/bookings", h.CreatePublicBooking)

		// Admin dashboard, JWT required
		admin := api.Group("")
		admin.Use(middleware.RequireAuth([]byte(env.JWTSecret)))
		{
			// Users, owner only
			users := admin.Group("/users", middleware.RequireRoles(models.RoleOwner))
			users.GET("", h.GetUsers)
			users.GET("/:id", h.GetUserByID)
			users.POST("", h.CreateUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)

			// Tours and their spots
			tours := admin.Group("/tours")
			tours.GET("", h.GetTours)
			tours.POST("", h.CreateTour)
			tours.GET("/spots", h.GetSpots)
			tours.POST("/spots/sweep", h.SweepDepartedSpots)
			tours.GET("/spots/:id", h.GetSpotByID)
			tours.PUT("/spots/:id", h.UpdateSpot)
			tours.DELETE("/spots/:id", h.DeleteSpot)
			tours.POST("/spots/:id/email", h.QueueSpotEmail)
			tours.GET("/spots/:id/emails", h.GetSpotEmails)
			tours.GET("/:id", h.GetTourByID)
			tours.PUT("/:id", h.UpdateTour)
			tours.PUT("/:id/status", h.UpdateTourStatus)
			tours.DELETE("/:id", h.DeleteTour)

			// legacy spot creation path kept for the dashboard
			admin.POST("/spots", h.CreateSpot)

			// Bookings
			bookings := admin.Group("/bookings")
			bookings.GET("", h.GetBookings)
			bookings.GET("/export", h.ExportBookingsCSV)
			bookings.POST("", h.CreateBooking)
			bookings.GET("/:id", h.GetBookingByID)
			bookings.PUT("/:id/status", h.UpdateBookingStatus)
			bookings.PUT("/:id/notes", h.UpdateBookingNotes)
			bookings.PUT("/:id/travelers", h.ReplaceBookingTravelers)
			bookings.DELETE("/:id", h.CancelBooking)
			bookings.GET("/:id/payments", h.GetBookingPayments)
			bookings.POST("/:id/payments", h.CreateBookingPayment)
			bookings.GET("/:id/voucher", h.GetBookingVoucherPDF)
			bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)

			// Payments
			payments := admin.Group("/payments")
			payments.PUT("/:id/status", h.UpdatePaymentStatus)

			// Customers
			customers := admin.Group("/customers")
			customers.GET("", h.GetCustomers)
			customers.GET("/:id", h.GetCustomerByID)
			customers.POST("", h.CreateCustomer)
			customers.PUT("/:id", h.UpdateCustomer)
			customers.DELETE("/:id", h.DeleteCustomer)

			// Categories
			categories := admin.Group("/categories")
			categories.GET("", h.GetCategories)
			categories.POST("", h.CreateCategory)
			categories.PUT("/:id", h.UpdateCategory)
			categories.DELETE("/:id", h.DeleteCategory)

			// Reviews moderation
			reviews := admin.Group("/reviews")
			reviews.GET("", h.GetReviews)
			reviews.PUT("/:id/status", h.UpdateReviewStatus)
			reviews.DELETE("/:id", h.DeleteReview)

			// Operator profile
			admin.GET("/profile", h.GetProfile)
			admin.PUT("/profile", h.UpdateProfile)

			// Reports
			admin.GET("/reports/summary", h.GetDashboardSummary)
		}
	}

	return r
}
