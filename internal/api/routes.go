package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if handler.telemetry != nil {
		router.GET("/metrics", gin.WrapH(handler.telemetry.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		complaints := v1.Group("/complaints")
		{
			complaints.POST("", handler.Submit)                // POST /api/v1/complaints
			complaints.POST("/analyze", handler.Analyze)       // POST /api/v1/complaints/analyze
			complaints.POST("/batch", handler.AnalyzeBatch)    // POST /api/v1/complaints/batch
			complaints.GET("", handler.ListSubmissions)        // GET  /api/v1/complaints
		}

		v1.GET("/dashboard", handler.Dashboard) // GET /api/v1/dashboard
	}
}
