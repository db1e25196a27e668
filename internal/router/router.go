package router

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/plateful/recipebook/internal/api"
	"github.com/plateful/recipebook/internal/middleware"
)

// Setup configures the application routes and middleware chain.
func Setup(recipeHandler *api.RecipeHandler, redisClient *redis.Client, corsOrigins []string, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(middleware.Metrics())
	router.Use(corsMiddleware(corsOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Writes get throttled only when Redis is configured.
	var writeGuards []gin.HandlerFunc
	if redisClient != nil {
		writeGuards = append(writeGuards, middleware.NewWriteRateLimiter(redisClient).Middleware())
	}

	v1 := router.Group("/api/v1")
	recipeHandler.RegisterRoutes(v1, writeGuards...)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With"}
	cfg.MaxAge = 24 * time.Hour
	return cors.New(cfg)
}
