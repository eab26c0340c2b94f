// Package router assembles the gin engine shared by all services.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/infrastructure/config"
	"github.com/shopstream/backend/internal/infrastructure/logger"
	"github.com/shopstream/backend/internal/interfaces/http/middleware"
)

// New builds a gin engine with the platform middleware stack applied:
// panic recovery, request ids, request logging and the CORS policy.
// Handlers register their routes on the returned engine.
func New(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(log),
		logger.GinMiddleware(log),
		middleware.CORS(&cfg.HTTP),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.App.Name})
	})

	return engine
}
