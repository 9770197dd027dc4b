package youtube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/alsahih/internal/youtube"
)

func TestBestThumbnail(t *testing.T) {
	t.Parallel()

	thumb := func(u string) *youtube.Thumbnail { return &youtube.Thumbnail{URL: u} }

	tests := []struct {
		name   string
		thumbs youtube.Thumbnails
		want   string
	}{
		{
			name: "maxres wins",
			thumbs: youtube.Thumbnails{
				Default: thumb("d"), Medium: thumb("m"), High: thumb("h"), Standard: thumb("s"), Maxres: thumb("x"),
			},
			want: "x",
		},
		{
			name:   "standard before high",
			thumbs: youtube.Thumbnails{High: thumb("h"), Standard: thumb("s")},
			want:   "s",
		},
		{
			name:   "high before medium",
			thumbs: youtube.Thumbnails{Default: thumb("d"), Medium: thumb("m"), High: thumb("h")},
			want:   "h",
		},
		{
			name:   "default only",
			thumbs: youtube.Thumbnails{Default: thumb("d")},
			want:   "d",
		},
		{
			name:   "empty url skipped",
			thumbs: youtube.Thumbnails{Maxres: thumb(""), Medium: thumb("m")},
			want:   "m",
		},
		{
			name: "none falls back to cdn",
			want: "https://i.ytimg.com/vi/abc/maxresdefault.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, youtube.BestThumbnail("abc", tt.thumbs))
		})
	}
}

func TestURLs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://www.youtube.com/watch?v=abc", youtube.WatchURL("abc"))
	assert.Equal(t, "https://www.youtube.com/embed/abc", youtube.EmbedURL("abc"))
}
