package events

import "time"

const (
	TypeCatalogRefresh    = "catalog.refresh"
	TypeCatalogInvalidate = "catalog.invalidate"
	TypeCustomTemplate    = "template.custom"
)

// CatalogEvent is pushed to connected clients whenever the template
// catalog changes, so open editors can refresh their pickers.
type CatalogEvent struct {
	Type     string    `json:"type"`
	Total    int       `json:"total,omitempty"`
	Cached   bool      `json:"cached,omitempty"`
	Template string    `json:"template_id,omitempty"`
	At       time.Time `json:"at"`
}
