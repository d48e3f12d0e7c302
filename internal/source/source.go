package source

import (
	"context"
	"strings"

	"memehub/pkg/models"
)

// Source is implemented by each external template provider (catalog
// API, content aggregator, curated list). Each source fetches its own
// data format and maps it into TemplateRecord.
//
// A source returns an error only for total failure of its upstream;
// the aggregator logs it and moves on. Partial failures inside a
// source (one channel of many) are absorbed by the source itself.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.TemplateRecord, error)
}

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
var videoExts = []string{".mp4", ".webm", ".mov", ".avi"}

var imageHosts = []string{"i.redd.it", "i.imgur.com", "imgur.com", "i.imgflip.com"}
var videoHosts = []string{"v.redd.it", "gfycat.com", "redgifs.com"}

// gallery pages and external video platforms have no direct media URL
var excludePatterns = []string{"reddit.com/gallery", "youtu.be", "youtube.com", "twitter.com", "tiktok.com"}

// IsMediaURL reports whether a URL points at directly embeddable media:
// a known image/video extension or host, and none of the excluded
// non-media link shapes.
func IsMediaURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u := strings.ToLower(rawURL)

	for _, pat := range excludePatterns {
		if strings.Contains(u, pat) {
			return false
		}
	}

	for _, ext := range imageExts {
		if strings.Contains(u, ext) {
			return true
		}
	}
	for _, ext := range videoExts {
		if strings.Contains(u, ext) {
			return true
		}
	}
	for _, host := range imageHosts {
		if strings.Contains(u, host) {
			return true
		}
	}
	for _, host := range videoHosts {
		if strings.Contains(u, host) {
			return true
		}
	}
	return false
}

// MediaKindOf classifies a media URL as image or video by extension and
// known-host heuristics. Image is the default.
func MediaKindOf(rawURL string) models.MediaKind {
	u := strings.ToLower(rawURL)
	for _, ext := range videoExts {
		if strings.Contains(u, ext) {
			return models.MediaVideo
		}
	}
	for _, host := range videoHosts {
		if strings.Contains(u, host) {
			return models.MediaVideo
		}
	}
	return models.MediaImage
}
