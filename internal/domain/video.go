// Package domain holds the value types shared between the feed resolver and
// the HTTP layer.
package domain

// VideoItem is one entry of the recent-videos feed served to the site.
// PublishedAt is kept as the upstream ISO-8601 string: ranking compares it
// lexicographically.
type VideoItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	DurationSec int    `json:"durationSec"`
	URL         string `json:"url"`
	Embed       string `json:"embed"`
	Thumb       string `json:"thumb"`
}
