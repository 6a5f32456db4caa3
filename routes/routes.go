package routes

import (
	"net/http"

	"conference-portal-api/controllers"
	"conference-portal-api/middleware"
	"conference-portal-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, h *controllers.Handler, jwtSecret string) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/login", h.Login)
			public.GET("/health", h.Health)
			public.GET("/statuses", h.Statuses)

			// Contact form
			public.POST("/messages", h.SubmitMessage)
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/me", h.Me)
			protected.GET("/profile", h.GetProfile)
			protected.PUT("/profile", h.UpdateProfile)

			papers := protected.Group("/papers")
			{
				papers.POST("", h.SubmitPaper)
				papers.GET("", h.ListMyPapers)
				papers.GET("/:id", h.GetPaper)
				papers.GET("/:id/history", h.PaperHistory)
			}

			payments := protected.Group("/payments")
			{
				payments.POST("", h.RecordPayment)
				payments.GET("", h.ListMyPayments)
				payments.GET("/:id", h.GetPayment)
			}

			protected.GET("/dashboard/me", h.UserDashboard)

			// Admin only
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/papers", h.AdminListPapers)
				admin.PUT("/papers/:id/review", h.ReviewPaper)

				admin.GET("/payments", h.AdminListPayments)
				admin.PUT("/payments/:id/status", h.UpdatePaymentStatus)

				messages := admin.Group("/messages")
				{
					messages.GET("", h.AdminListMessages)
					messages.GET("/counts", h.MessageCounts)
					messages.GET("/:id", h.OpenMessage)
					messages.POST("/:id/read", h.MarkMessageRead)
					messages.POST("/:id/respond", h.RespondMessage)
					messages.DELETE("/:id", h.DeleteMessage)
				}

				admin.GET("/dashboard", h.AdminDashboard)
				admin.GET("/events", h.StreamEvents)
			}
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})
}
