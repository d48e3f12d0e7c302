// Package api exposes the template catalog over HTTP for the editor
// frontend.
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"memehub/internal/catalog"
	"memehub/internal/events"
)

const validateLimit = 20

type Handler struct {
	Catalog *catalog.Aggregator
	Prober  *catalog.Prober
	Store   *catalog.Store
	Hub     *events.Hub

	MaxUpload int64
	uploads   *uploadStore
}

func NewHandler(agg *catalog.Aggregator, prober *catalog.Prober, store *catalog.Store, hub *events.Hub, maxUpload int64) *Handler {
	return &Handler{
		Catalog:   agg,
		Prober:    prober,
		Store:     store,
		Hub:       hub,
		MaxUpload: maxUpload,
		uploads:   newUploadStore(),
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.list) // GET /api/templates?q=&category=&limit=
	rg.GET("/templates/trending", h.trending)
	rg.GET("/templates/:id", h.getByID)
	rg.POST("/templates/refresh", h.refresh)
	rg.POST("/templates/custom", h.uploadCustom)
	rg.GET("/uploads/:id", h.serveUpload)
	rg.GET("/categories", h.categories)
	rg.GET("/stats", h.stats)
	rg.POST("/handoff/:key", h.setHandoff)
	rg.GET("/handoff/:key", h.takeHandoff)
}

// list serves the merged catalog. Custom uploads sort first so the
// user's own templates are always visible; q and category filter, an
// empty query is the identity.
func (h *Handler) list(c *gin.Context) {
	res := h.Catalog.Catalog(c.Request.Context())
	recs := append(h.uploads.Records(), res.Records...)

	if cat := c.Query("category"); cat != "" {
		recs = catalog.ByCategory(recs, cat)
	}
	if q := c.Query("q"); q != "" {
		recs = catalog.Search(recs, q)
	}
	if limit := parseInt(c.Query("limit"), 0); limit > 0 {
		recs = catalog.TopN(recs, limit)
	}
	if c.Query("validate") == "1" {
		recs = h.Prober.ValidateTop(c.Request.Context(), recs, validateLimit)
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  res.Total,
		"count":  len(recs),
		"cached": res.Cached,
		"items":  recs,
	})
}

func (h *Handler) trending(c *gin.Context) {
	res := h.Catalog.Catalog(c.Request.Context())
	n := parseInt(c.Query("limit"), 12)
	c.JSON(http.StatusOK, gin.H{
		"items": catalog.Trending(res.Records, n),
	})
}

func (h *Handler) getByID(c *gin.Context) {
	id := c.Param("id")
	if rec, ok := h.uploads.Record(id); ok {
		c.JSON(http.StatusOK, rec)
		return
	}
	res := h.Catalog.Catalog(c.Request.Context())
	for _, rec := range res.Records {
		if rec.ID == id {
			c.JSON(http.StatusOK, rec)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// refresh drops the cache, refetches and tells connected editors.
func (h *Handler) refresh(c *gin.Context) {
	h.Catalog.Invalidate()
	res := h.Catalog.Catalog(c.Request.Context())
	if h.Hub != nil {
		h.Hub.Broadcast(events.CatalogEvent{
			Type:   events.TypeCatalogRefresh,
			Total:  res.Total,
			Cached: res.Cached,
			At:     time.Now(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"total": res.Total, "cached": res.Cached})
}

func (h *Handler) categories(c *gin.Context) {
	res := h.Catalog.Catalog(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"categories": catalog.Categories(res.Records),
	})
}

func (h *Handler) stats(c *gin.Context) {
	res := h.Catalog.Catalog(c.Request.Context())
	recs := append(h.uploads.Records(), res.Records...)
	c.JSON(http.StatusOK, catalog.Stats(recs))
}

// setHandoff parks a small JSON blob under a key. The editor page on
// another tab reads it exactly once; a second read is a 404.
func (h *Handler) setHandoff(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(strings.TrimSpace(string(body))) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty body"})
		return
	}
	if err := h.Store.SetHandoff(c.Request.Context(), c.Param("key"), string(body)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stored"})
}

func (h *Handler) takeHandoff(c *gin.Context) {
	value, ok, err := h.Store.TakeHandoff(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(value))
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
