package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shoppingagent/backend/config"
)

// SetupRouter creates and configures the Gin router.
// A nil limiter disables per-IP rate limiting.
func SetupRouter(cfg *config.Config, handler *Handler, limiter VisitorLimiter) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(RateLimitMiddleware(limiter))
	}
	{
		products := v1.Group("/products")
		{
			products.GET("/search", handler.SearchProducts)
		}

		shopping := v1.Group("/shopping")
		{
			shopping.POST("/ask", handler.Ask)
			shopping.GET("/ws", handler.ChatWebSocket(cfg.Server.AllowedOrigins, limiter))
		}
	}

	return router
}
