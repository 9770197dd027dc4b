package config

import (
	"time"

	infraconfig "github.com/jonesrussell/alsahih/infrastructure/config"
	"github.com/jonesrussell/alsahih/internal/feed"
)

// Default configuration values.
const (
	defaultServiceName  = "alsahih-feed"
	defaultServicePort  = 8095
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"
	defaultLoggingFmt   = "json"

	defaultBaseURL        = "https://www.googleapis.com/youtube/v3"
	defaultChannelID      = "UCvf66KiiFwxLnDQ_d0djykA"
	defaultRequestTimeout = 10 * time.Second

	defaultFailureThreshold = 5
	defaultBreakerTimeout   = 30 * time.Second

	defaultRatePerSecond = 5.0
	defaultRateBurst     = 10

	defaultIndexPath = "public/data/bukhari/index_min.json"
)

// Config holds the feed service configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
	Feed      FeedConfig      `yaml:"feed"`
	Breaker   BreakerConfig   `yaml:"circuit_breaker"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Port        int      `env:"FEED_PORT"         yaml:"port"`
	Debug       bool     `env:"APP_DEBUG"         yaml:"debug"`
	CORSOrigins []string `env:"FEED_CORS_ORIGINS" yaml:"cors_origins"`
}

// YouTubeConfig holds the Data API settings. An empty APIKey is allowed at
// startup; the feed endpoint reports it per request.
type YouTubeConfig struct {
	APIKey         string        `env:"YT_API_KEY"         yaml:"api_key"`
	ChannelID      string        `env:"YT_CHANNEL_ID"      yaml:"channel_id"`
	BaseURL        string        `env:"YT_BASE_URL"        yaml:"base_url"`
	RequestTimeout time.Duration `env:"YT_REQUEST_TIMEOUT" yaml:"request_timeout"`
}

// FeedConfig holds the resolver policies.
type FeedConfig struct {
	SearchSize     int    `yaml:"search_size"`
	Limit          int    `yaml:"limit"`
	DurationPolicy string `env:"FEED_DURATION_POLICY" yaml:"duration_policy"`
	FailurePolicy  string `env:"FEED_FAILURE_POLICY"  yaml:"failure_policy"`
}

// BreakerConfig configures the upstream circuit breaker.
type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	Timeout          time.Duration `yaml:"timeout"`
}

// RateLimitConfig is the token bucket guarding the API quota.
type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"YT_RATE_LIMIT_RPS"   yaml:"requests_per_second"`
	Burst             int     `env:"YT_RATE_LIMIT_BURST" yaml:"burst"`
}

// CatalogConfig points the content_index health check at the built index.
type CatalogConfig struct {
	IndexPath string `env:"CATALOG_INDEX_PATH" yaml:"index_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setYouTubeDefaults(&cfg.YouTube)
	setFeedDefaults(&cfg.Feed)
	setBreakerDefaults(&cfg.Breaker)
	setRateLimitDefaults(&cfg.RateLimit)
	if cfg.Catalog.IndexPath == "" {
		cfg.Catalog.IndexPath = defaultIndexPath
	}
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setYouTubeDefaults(yt *YouTubeConfig) {
	if yt.ChannelID == "" {
		yt.ChannelID = defaultChannelID
	}
	if yt.BaseURL == "" {
		yt.BaseURL = defaultBaseURL
	}
	if yt.RequestTimeout == 0 {
		yt.RequestTimeout = defaultRequestTimeout
	}
}

func setFeedDefaults(f *FeedConfig) {
	if f.SearchSize == 0 {
		f.SearchSize = feed.DefaultSearchSize
	}
	if f.Limit == 0 {
		f.Limit = feed.DefaultLimit
	}
	if f.DurationPolicy == "" {
		f.DurationPolicy = string(feed.DurationAny)
	}
	if f.FailurePolicy == "" {
		f.FailurePolicy = string(feed.FailureFail)
	}
}

func setBreakerDefaults(b *BreakerConfig) {
	if b.FailureThreshold == 0 {
		b.FailureThreshold = defaultFailureThreshold
	}
	if b.Timeout == 0 {
		b.Timeout = defaultBreakerTimeout
	}
}

func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.RequestsPerSecond == 0 {
		rl.RequestsPerSecond = defaultRatePerSecond
	}
	if rl.Burst == 0 {
		rl.Burst = defaultRateBurst
	}
}

func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
	if log.Format == "" {
		log.Format = defaultLoggingFmt
	}
}

// Validate validates the configuration. A missing API key is deliberately
// not checked here.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateRequired("youtube.channel_id", c.YouTube.ChannelID); err != nil {
		return err
	}
	if _, err := feed.ParseDurationPolicy(c.Feed.DurationPolicy); err != nil {
		return &infraconfig.ValidationError{Field: "feed.duration_policy", Message: err.Error()}
	}
	if _, err := feed.ParseFailurePolicy(c.Feed.FailurePolicy); err != nil {
		return &infraconfig.ValidationError{Field: "feed.failure_policy", Message: err.Error()}
	}
	if c.Feed.SearchSize < 1 || c.Feed.SearchSize > 50 {
		return &infraconfig.ValidationError{Field: "feed.search_size", Message: "must be between 1 and 50"}
	}
	if c.Feed.Limit < 1 {
		return &infraconfig.ValidationError{Field: "feed.limit", Message: "must be positive"}
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return &infraconfig.ValidationError{Field: "rate_limit", Message: "must not be negative"}
	}
	return infraconfig.ValidateLogLevel("logging.level", c.Logging.Level)
}
