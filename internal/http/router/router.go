package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/quizgate-bot/internal/config"
	"github.com/ignatzorin/quizgate-bot/internal/http/handlers"
	"github.com/ignatzorin/quizgate-bot/internal/http/middleware"
)

// SetupRouter собирает операционный HTTP API бота.
func SetupRouter(cfg *config.Config, healthHandler *handlers.HealthHandler, statusHandler *handlers.StatusHandler) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	engine.GET("/health", healthHandler.Health)

	api := engine.Group("/api/v1")
	{
		api.GET("/status", statusHandler.Status)
	}

	return engine
}
