package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/alsahih/infrastructure/circuitbreaker"
	infralogger "github.com/jonesrussell/alsahih/infrastructure/logger"
	"github.com/jonesrussell/alsahih/internal/domain"
	"github.com/jonesrussell/alsahih/internal/feed"
	"github.com/jonesrussell/alsahih/internal/telemetry"
)

// Cache-Control values for the feed endpoint.
const (
	FeedCacheControl     = "public, s-maxage=900, stale-while-revalidate=86400"
	DegradedCacheControl = "no-store"
)

// Error messages returned in {"error": ...} bodies. Upstream details stay in
// the logs.
const (
	msgMissingAPIKey = "Missing YT_API_KEY (youtube.api_key)"
	msgUpstream      = "failed to fetch videos from YouTube"
	msgCircuitOpen   = "YouTube is temporarily unavailable"
)

// FeedResolver produces the ranked video feed.
type FeedResolver interface {
	Resolve(ctx context.Context) ([]domain.VideoItem, error)
}

// FeedObserver records feed outcomes.
type FeedObserver interface {
	ObserveFeed(outcome string, items int)
}

type nopFeedObserver struct{}

func (nopFeedObserver) ObserveFeed(string, int) {}

// FeedHandler serves the recent-videos feed.
type FeedHandler struct {
	resolver FeedResolver
	policy   feed.FailurePolicy
	observer FeedObserver
	logger   infralogger.Logger
}

// NewFeedHandler creates a FeedHandler. A nil observer disables metrics.
func NewFeedHandler(
	resolver FeedResolver,
	policy feed.FailurePolicy,
	observer FeedObserver,
	log infralogger.Logger,
) *FeedHandler {
	if policy == "" {
		policy = feed.FailureFail
	}
	if observer == nil {
		observer = nopFeedObserver{}
	}
	return &FeedHandler{
		resolver: resolver,
		policy:   policy,
		observer: observer,
		logger:   log,
	}
}

// GetFeed handles GET /api/youtube/shorts.
func (h *FeedHandler) GetFeed(c *gin.Context) {
	items, err := h.resolver.Resolve(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.observer.ObserveFeed(telemetry.FeedOK, len(items))
	c.Header("Cache-Control", FeedCacheControl)
	c.JSON(http.StatusOK, items)
}

func (h *FeedHandler) handleError(c *gin.Context, err error) {
	log := infralogger.FromContextOr(c.Request.Context(), h.logger)

	if errors.Is(err, feed.ErrMissingAPIKey) {
		h.observer.ObserveFeed(telemetry.FeedMissingKey, 0)
		log.Error("Video feed requested without an API key")
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgMissingAPIKey})
		return
	}

	circuitOpen := errors.Is(err, circuitbreaker.ErrCircuitOpen)

	if h.policy == feed.FailureEmpty {
		h.observer.ObserveFeed(telemetry.FeedDegraded, 0)
		log.Warn("Serving empty video feed after upstream failure",
			infralogger.Bool("circuit_open", circuitOpen),
			infralogger.Error(err),
		)
		c.Header("Cache-Control", DegradedCacheControl)
		c.JSON(http.StatusOK, []domain.VideoItem{})
		return
	}

	if circuitOpen {
		h.observer.ObserveFeed(telemetry.FeedCircuitOpen, 0)
		log.Warn("Video feed rejected while circuit is open", infralogger.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgCircuitOpen})
		return
	}

	h.observer.ObserveFeed(telemetry.FeedUpstreamError, 0)
	log.Error("Failed to resolve video feed", infralogger.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": msgUpstream})
}
