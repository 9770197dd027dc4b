package youtube

const (
	watchURLPrefix = "https://www.youtube.com/watch?v="
	embedURLPrefix = "https://www.youtube.com/embed/"
	thumbCDNPrefix = "https://i.ytimg.com/vi/"
)

// WatchURL is the canonical watch page for id.
func WatchURL(id string) string {
	return watchURLPrefix + id
}

// EmbedURL is the iframe embed URL for id.
func EmbedURL(id string) string {
	return embedURLPrefix + id
}

// FallbackThumbnail is the CDN thumbnail URL used when the API returned none.
func FallbackThumbnail(id string) string {
	return thumbCDNPrefix + id + "/maxresdefault.jpg"
}

// BestThumbnail returns the highest quality thumbnail present, in the order
// maxres, standard, high, medium, default, falling back to the CDN URL.
func BestThumbnail(id string, t Thumbnails) string {
	for _, candidate := range []*Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if candidate != nil && candidate.URL != "" {
			return candidate.URL
		}
	}
	return FallbackThumbnail(id)
}
