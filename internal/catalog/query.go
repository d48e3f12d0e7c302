package catalog

import (
	"sort"
	"strings"

	"memehub/pkg/models"
)

// Query helpers are pure transforms over a record list: they allocate
// new slices and never mutate their input.

// ByCategory filters on exact category match. The sentinel "all" (or
// an empty category) passes everything through.
func ByCategory(recs []models.TemplateRecord, category string) []models.TemplateRecord {
	if category == "" || category == "all" {
		return append([]models.TemplateRecord(nil), recs...)
	}
	out := make([]models.TemplateRecord, 0, len(recs))
	for _, r := range recs {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Search matches a case-insensitive substring against name, category
// or any tag. An empty query passes everything through.
func Search(recs []models.TemplateRecord, query string) []models.TemplateRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.TemplateRecord(nil), recs...)
	}
	out := make([]models.TemplateRecord, 0, len(recs))
	for _, r := range recs {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.TemplateRecord, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Category), q) {
		return true
	}
	for _, t := range r.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// TopN returns the n most popular records, stable-sorted by
// popularity descending.
func TopN(recs []models.TemplateRecord, n int) []models.TemplateRecord {
	out := append([]models.TemplateRecord(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Popularity > out[j].Popularity
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Trending returns the top n records of the trending category.
func Trending(recs []models.TemplateRecord, n int) []models.TemplateRecord {
	return TopN(ByCategory(recs, "trending"), n)
}

// Categories lists the distinct category labels present, sorted, with
// the fixed sentinels "all" and "popular" prepended.
func Categories(recs []models.TemplateRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range recs {
		if r.Category != "" {
			seen[r.Category] = struct{}{}
		}
	}
	distinct := make([]string, 0, len(seen))
	for c := range seen {
		distinct = append(distinct, c)
	}
	sort.Strings(distinct)
	return append([]string{"all", "popular"}, distinct...)
}

// Stats summarizes a catalog for the browsing UI.
func Stats(recs []models.TemplateRecord) models.CatalogStats {
	s := models.CatalogStats{Total: len(recs)}
	for _, r := range recs {
		switch r.Source {
		case models.SourceImgflip:
			s.Imgflip++
		case models.SourceReddit:
			s.Reddit++
		default:
			s.Custom++
		}
	}
	s.Categories = len(Categories(recs)) - 2 // minus the sentinels
	return s
}
