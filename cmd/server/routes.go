package main

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"marketly.backend/internal/interfaces/http/handlers"
	"marketly.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	merchantHandler    *handlers.MerchantHandler
	bookingHandler     *handlers.BookingHandler
	reservationHandler *handlers.ReservationHandler
	orderHandler       *handlers.OrderHandler
	platformFeeHandler *handlers.PlatformFeeHandler
	authMiddleware     gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Request-ID, Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, db *sql.DB) {
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Merchant lifecycle routes (protected)
		merchants := v1.Group("/merchants")
		merchants.Use(d.authMiddleware)
		{
			merchants.POST("/apply", d.merchantHandler.Apply)
			merchants.GET("/:id", d.merchantHandler.Get)
			merchants.GET("/:id/status-logs", d.merchantHandler.GetStatusLogs)
			merchants.GET("/:id/onboarding", d.merchantHandler.GetOnboarding)
			merchants.POST("/:id/branches", d.merchantHandler.CreateBranch)
		}

		// Booking routes (protected)
		bookings := v1.Group("/bookings")
		bookings.Use(d.authMiddleware)
		{
			bookings.POST("", middleware.IdempotencyMiddleware(), d.bookingHandler.Create)
			bookings.GET("/:id", d.bookingHandler.Get)
			bookings.GET("", middleware.RequireMerchantOrAdmin(), d.bookingHandler.List)
			bookings.PATCH("/:id/status", d.bookingHandler.UpdateStatus)
		}

		// Reservation routes (protected)
		reservations := v1.Group("/reservations")
		reservations.Use(d.authMiddleware)
		{
			reservations.POST("", middleware.IdempotencyMiddleware(), d.reservationHandler.Create)
			reservations.GET("/:id", d.reservationHandler.Get)
			reservations.GET("", middleware.RequireMerchantOrAdmin(), d.reservationHandler.List)
			reservations.PATCH("/:id/status", d.reservationHandler.UpdateStatus)
		}

		// Order routes (protected)
		orders := v1.Group("/orders")
		orders.Use(d.authMiddleware)
		{
			orders.POST("", middleware.IdempotencyMiddleware(), d.orderHandler.Create)
			orders.GET("/:id", d.orderHandler.Get)
			orders.GET("", middleware.RequireMerchantOrAdmin(), d.orderHandler.List)
			orders.PATCH("/:id/status", d.orderHandler.UpdateStatus)
		}

		// Admin routes (protected, admin only)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/merchants", d.merchantHandler.List)
			admin.PATCH("/merchants/:id/status", d.merchantHandler.UpdateStatus)
			admin.DELETE("/merchants/:id", d.merchantHandler.Delete)

			admin.GET("/fees", d.platformFeeHandler.List)
			admin.POST("/fees", d.platformFeeHandler.Create)
			admin.POST("/fees/:id/activate", d.platformFeeHandler.Activate)
			admin.POST("/fees/:id/deactivate", d.platformFeeHandler.Deactivate)
		}
	}
}
