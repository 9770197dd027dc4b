package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/alsahih/infrastructure/gin"
	infralogger "github.com/jonesrussell/alsahih/infrastructure/logger"
	"github.com/jonesrussell/alsahih/internal/config"
	"github.com/jonesrussell/alsahih/internal/handler"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// Dependencies are the components the HTTP server routes to.
type Dependencies struct {
	FeedHandler    *handler.FeedHandler
	MetricsHandler http.Handler
	RequestMetrics gin.HandlerFunc
	Upstream       BreakerStater
	HasAPIKey      bool
}

// NewServer creates a new HTTP server.
func NewServer(deps Dependencies, cfg *config.Config, log infralogger.Logger) *infragin.Server {
	return infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		WithHealthCheck("youtube", YouTubeCheck(deps.Upstream, deps.HasAPIKey)).
		WithHealthCheck("content_index", ContentIndexCheck(cfg.Catalog.IndexPath)).
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, deps.FeedHandler, deps.MetricsHandler, deps.RequestMetrics)
		}).
		Build()
}
