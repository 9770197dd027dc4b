package catalog

import (
	"fmt"

	"github.com/jonesrussell/alsahih/infrastructure/logger"
)

// Default build paths, relative to the site root.
const (
	DefaultIndexPath   = "public/data/bukhari/index_min.json"
	DefaultSitemapPath = "public/sitemap.xml"
)

// SitemapOptions configures GenerateSitemap. Empty fields take the defaults.
type SitemapOptions struct {
	IndexPath  string
	OutputPath string
	SiteURL    string
	Logger     logger.Logger
}

func (o *SitemapOptions) setDefaults() {
	if o.IndexPath == "" {
		o.IndexPath = DefaultIndexPath
	}
	if o.OutputPath == "" {
		o.OutputPath = DefaultSitemapPath
	}
	if o.SiteURL == "" {
		o.SiteURL = DefaultSiteURL
	}
	if o.Logger == nil {
		o.Logger = logger.NewNop()
	}
}

// GenerateSitemap loads the index, builds the sitemap and writes it. It
// returns the number of content entries written. When the index cannot be
// loaded nothing is written and the error wraps ErrIndexMissing or
// ErrIndexMalformed.
func GenerateSitemap(opts SitemapOptions) (int, error) {
	opts.setDefaults()

	entries, err := LoadIndex(opts.IndexPath)
	if err != nil {
		return 0, err
	}

	sitemap := BuildSitemap(opts.SiteURL, entries)
	if writeErr := WriteSitemap(opts.OutputPath, sitemap); writeErr != nil {
		return 0, fmt.Errorf("write sitemap: %w", writeErr)
	}

	count := sitemap.ContentCount()
	if dropped := len(entries) - count; dropped > 0 {
		opts.Logger.Warn("Index entries without id or uid were skipped", logger.Int("skipped", dropped))
	}
	opts.Logger.Info("Sitemap generated",
		logger.String("path", opts.OutputPath),
		logger.Int("entries", count),
	)
	return count, nil
}
