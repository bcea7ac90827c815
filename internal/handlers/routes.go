package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"options-contracts-api/internal/config"
	"options-contracts-api/internal/middleware"
	"options-contracts-api/internal/services"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	OptionsService services.OptionsService
	RateLimit      config.RateLimitConfig
	SlowThreshold  time.Duration
}

// NewRouter builds a gin engine with the standard middleware chain and all routes
func NewRouter(cfg *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.PerformanceMonitor(cfg.SlowThreshold))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())

	SetupRoutes(router, cfg)
	return router
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	optionsHandler := NewOptionsHandler(cfg.OptionsService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "options-contracts-api",
			"version":   Version,
			"timestamp": time.Now().UTC(),
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	{
		options := v1.Group("/options")
		{
			options.GET("/contracts", optionsHandler.ListContracts)
			options.GET("/contracts/:option_ticker", optionsHandler.GetContract)
		}
	}
}
