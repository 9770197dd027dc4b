package youtube

// searchResponse is the subset of a search.list response we read.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
}

// videosResponse is the subset of a videos.list response we read.
type videosResponse struct {
	Items []Video `json:"items"`
}

// Video is a videos.list item with the snippet and contentDetails parts.
type Video struct {
	ID             string         `json:"id"`
	Snippet        Snippet        `json:"snippet"`
	ContentDetails ContentDetails `json:"contentDetails"`
}

// Snippet carries title, publish time and thumbnails.
type Snippet struct {
	PublishedAt string     `json:"publishedAt"`
	Title       string     `json:"title"`
	Thumbnails  Thumbnails `json:"thumbnails"`
}

// Thumbnails lists the renditions the API returned; any may be missing.
type Thumbnails struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

// Thumbnail is a single rendition.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ContentDetails carries the ISO-8601 duration.
type ContentDetails struct {
	Duration string `json:"duration"`
}
