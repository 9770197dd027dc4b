package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/alsahih/internal/handler"
)

// FeedPath is the recent-videos endpoint consumed by the site.
const FeedPath = "/api/youtube/shorts"

// SetupRoutes configures all API routes.
// Health routes are registered by the infrastructure gin builder.
// Request metrics cover the routes registered here, so requestMetrics must be
// attached before them.
func SetupRoutes(
	router *gin.Engine,
	feedHandler *handler.FeedHandler,
	metricsHandler http.Handler,
	requestMetrics gin.HandlerFunc,
) {
	if requestMetrics != nil {
		router.Use(requestMetrics)
	}

	router.GET(FeedPath, feedHandler.GetFeed)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
}
