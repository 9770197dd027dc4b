// Package feed resolves a channel's most recent videos into the small,
// ranked list the site renders.
package feed

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jonesrussell/alsahih/infrastructure/logger"
	"github.com/jonesrussell/alsahih/internal/domain"
	"github.com/jonesrussell/alsahih/internal/youtube"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mock_video_api.go -package=mocks

// ErrMissingAPIKey is returned by Resolve when no API key is configured.
// No upstream call is made.
var ErrMissingAPIKey = errors.New("missing YouTube API key")

// Defaults.
const (
	DefaultSearchSize = 15
	DefaultLimit      = 3
)

// VideoAPI is the upstream surface the resolver needs.
type VideoAPI interface {
	SearchRecent(ctx context.Context, apiKey, channelID string, maxResults int) ([]string, error)
	Videos(ctx context.Context, apiKey string, ids []string) ([]youtube.Video, error)
}

// Config configures a Resolver.
type Config struct {
	APIKey         string
	ChannelID      string
	SearchSize     int
	Limit          int
	DurationPolicy DurationPolicy
}

// Resolver turns a channel into its newest videos.
type Resolver struct {
	api    VideoAPI
	config Config
	log    logger.Logger
}

// NewResolver returns a Resolver. Zero SearchSize and Limit take the defaults.
func NewResolver(api VideoAPI, cfg Config, log logger.Logger) *Resolver {
	if cfg.SearchSize <= 0 {
		cfg.SearchSize = DefaultSearchSize
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.DurationPolicy == "" {
		cfg.DurationPolicy = DurationAny
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{api: api, config: cfg, log: log}
}

// HasAPIKey reports whether an API key is configured.
func (r *Resolver) HasAPIKey() bool {
	return r.config.APIKey != ""
}

// Resolve searches the channel, resolves the hits in one batch call and
// returns at most Limit items, newest first. An empty search returns an
// empty, non-nil slice without the batch call.
func (r *Resolver) Resolve(ctx context.Context) ([]domain.VideoItem, error) {
	if !r.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	ids, err := r.api.SearchRecent(ctx, r.config.APIKey, r.config.ChannelID, r.config.SearchSize)
	if err != nil {
		return nil, fmt.Errorf("search channel %s: %w", r.config.ChannelID, err)
	}
	if len(ids) == 0 {
		r.log.Debug("Channel search returned no videos", logger.String("channel_id", r.config.ChannelID))
		return []domain.VideoItem{}, nil
	}

	videos, err := r.api.Videos(ctx, r.config.APIKey, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve %d videos: %w", len(ids), err)
	}

	items := make([]domain.VideoItem, 0, len(videos))
	for _, v := range videos {
		item, ok := toItem(v)
		if !ok || !r.config.DurationPolicy.Allows(item.DurationSec) {
			continue
		}
		items = append(items, item)
	}

	return Rank(items, r.config.Limit), nil
}

// Rank sorts items by PublishedAt descending, keeping the input order for
// equal timestamps, and truncates to limit. items is sorted in place.
func Rank(items []domain.VideoItem, limit int) []domain.VideoItem {
	slices.SortStableFunc(items, func(a, b domain.VideoItem) int {
		return cmp.Compare(b.PublishedAt, a.PublishedAt)
	})
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func toItem(v youtube.Video) (domain.VideoItem, bool) {
	if v.ID == "" {
		return domain.VideoItem{}, false
	}
	return domain.VideoItem{
		ID:          v.ID,
		Title:       v.Snippet.Title,
		PublishedAt: v.Snippet.PublishedAt,
		DurationSec: youtube.ParseDuration(v.ContentDetails.Duration),
		URL:         youtube.WatchURL(v.ID),
		Embed:       youtube.EmbedURL(v.ID),
		Thumb:       youtube.BestThumbnail(v.ID, v.Snippet.Thumbnails),
	}, true
}
