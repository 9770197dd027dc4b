package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/alsahih/infrastructure/circuitbreaker"
	infraconfig "github.com/jonesrussell/alsahih/infrastructure/config"
	infrahttp "github.com/jonesrussell/alsahih/infrastructure/http"
	"github.com/jonesrussell/alsahih/infrastructure/logger"
	"github.com/jonesrussell/alsahih/infrastructure/profiling"
	"github.com/jonesrussell/alsahih/internal/api"
	"github.com/jonesrussell/alsahih/internal/config"
	"github.com/jonesrussell/alsahih/internal/feed"
	"github.com/jonesrussell/alsahih/internal/handler"
	"github.com/jonesrussell/alsahih/internal/telemetry"
	"github.com/jonesrussell/alsahih/internal/youtube"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Start profiling server (if enabled)
	profiling.StartPprofServer(log)

	return runServer(cfg, log)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := infraconfig.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// runServer wires the feed pipeline and serves until shutdown.
func runServer(cfg *config.Config, log logger.Logger) int {
	metrics := telemetry.New()

	// Policies were validated in loadConfig.
	durationPolicy, _ := feed.ParseDurationPolicy(cfg.Feed.DurationPolicy)
	failurePolicy, _ := feed.ParseFailurePolicy(cfg.Feed.FailurePolicy)

	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		Timeout:          cfg.Breaker.Timeout,
		OnStateChange: func(from, to circuitbreaker.State) {
			metrics.SetBreakerState(from, to)
			log.Warn("YouTube circuit breaker state changed",
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})

	client := youtube.NewClient(youtube.Config{
		BaseURL:    cfg.YouTube.BaseURL,
		HTTPClient: infrahttp.NewClient(&infrahttp.ClientConfig{Timeout: cfg.YouTube.RequestTimeout}),
		Limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		Breaker:    breaker,
		Observer:   metrics,
		Logger:     log,
	})

	resolver := feed.NewResolver(client, feed.Config{
		APIKey:         cfg.YouTube.APIKey,
		ChannelID:      cfg.YouTube.ChannelID,
		SearchSize:     cfg.Feed.SearchSize,
		Limit:          cfg.Feed.Limit,
		DurationPolicy: durationPolicy,
	}, log)

	if !resolver.HasAPIKey() {
		log.Warn("YT_API_KEY is not set; the video feed will answer 500 until it is configured")
	}

	feedHandler := handler.NewFeedHandler(resolver, failurePolicy, metrics, log)

	server := api.NewServer(api.Dependencies{
		FeedHandler:    feedHandler,
		MetricsHandler: metrics.Handler(),
		RequestMetrics: metrics.HTTP.Middleware(),
		Upstream:       client,
		HasAPIKey:      resolver.HasAPIKey(),
	}, cfg, log)

	log.Info("Video feed service starting",
		logger.Int("port", cfg.Service.Port),
		logger.String("channel_id", cfg.YouTube.ChannelID),
		logger.String("duration_policy", string(durationPolicy)),
		logger.String("failure_policy", string(failurePolicy)),
	)

	if err := server.Run(context.Background()); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Video feed service exited cleanly")
	return 0
}
