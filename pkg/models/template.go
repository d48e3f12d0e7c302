package models

// SourceKind identifies which fetcher produced a template record.
type SourceKind string

const (
	SourceImgflip SourceKind = "imgflip" // primary catalog API
	SourceReddit  SourceKind = "reddit"  // aggregator-sourced
	SourceCustom  SourceKind = "custom"  // curated list / user upload
)

// MediaKind distinguishes still images from video templates.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// TemplateRecord is the normalized, internal form of a meme template
// used by the fetchers, the aggregator and the HTTP layer.
//
// All external sources are mapped into this structure first; the merged
// catalog is built from this representation. URL is the canonical
// deduplication key: no two records in a merged catalog share a URL.
type TemplateRecord struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Category   string     `json:"category"`
	Tags       []string   `json:"tags,omitempty"`
	Popularity int        `json:"popularity"` // relative rank signal, higher = more prominent
	Source     SourceKind `json:"source"`
	Media      MediaKind  `json:"media_type"`

	// Primary-catalog metadata (imgflip only).
	Width    int `json:"width,omitempty"`
	Height   int `json:"height,omitempty"`
	BoxCount int `json:"box_count,omitempty"`

	// Provenance metadata (reddit only).
	Subreddit string `json:"subreddit,omitempty"`
	Upvotes   int    `json:"upvotes,omitempty"`
	Author    string `json:"author,omitempty"`
	Permalink string `json:"permalink,omitempty"`

	Thumbnail string `json:"thumbnail,omitempty"`
	Validated bool   `json:"validated,omitempty"` // set once by the async probe
}

// CatalogStats summarizes a merged catalog for the browsing UI.
type CatalogStats struct {
	Total      int `json:"total"`
	Imgflip    int `json:"imgflip"`
	Reddit     int `json:"reddit"`
	Custom     int `json:"custom"`
	Categories int `json:"categories"`
}
