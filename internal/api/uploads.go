package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"memehub/internal/events"
	"memehub/pkg/models"
)

// uploadStore keeps user-supplied templates in memory. Uploads live
// for the process lifetime only; the catalog proper always comes from
// the upstream sources.
type uploadStore struct {
	mu    sync.Mutex
	items map[string]*upload
	order []string
}

type upload struct {
	rec         models.TemplateRecord
	data        []byte
	contentType string
}

func newUploadStore() *uploadStore {
	return &uploadStore{items: make(map[string]*upload)}
}

func (s *uploadStore) add(u *upload) {
	s.mu.Lock()
	s.items[u.rec.ID] = u
	s.order = append(s.order, u.rec.ID)
	s.mu.Unlock()
}

func (s *uploadStore) get(id string) (*upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	return u, ok
}

func (s *uploadStore) Record(id string) (models.TemplateRecord, bool) {
	u, ok := s.get(id)
	if !ok {
		return models.TemplateRecord{}, false
	}
	return u.rec, true
}

// Records returns upload records newest first.
func (s *uploadStore) Records() []models.TemplateRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TemplateRecord, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.items[s.order[i]].rec)
	}
	return out
}

// uploadCustom accepts a multipart image or video and registers it as
// a custom template. Files over the size limit are rejected before the
// body is buffered.
func (h *Handler) uploadCustom(c *gin.Context) {
	if c.Request.ContentLength > h.MaxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds %d MB limit", h.MaxUpload>>20),
		})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.MaxUpload+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read failed"})
		return
	}
	if int64(len(data)) > h.MaxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file exceeds %d MB limit", h.MaxUpload>>20),
		})
		return
	}

	contentType := http.DetectContentType(data)
	media := models.MediaImage
	switch {
	case strings.HasPrefix(contentType, "image/"):
	case strings.HasPrefix(contentType, "video/"):
		media = models.MediaVideo
	default:
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "only image and video uploads are accepted"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}
	if name == "" {
		name = "Custom Template"
	}

	id := "custom-" + uuid.NewString()
	rec := models.TemplateRecord{
		ID:         id,
		Name:       name,
		URL:        "/api/uploads/" + id,
		Category:   "custom",
		Tags:       []string{"custom", "upload"},
		Popularity: 100,
		Source:     models.SourceCustom,
		Media:      media,
	}
	h.uploads.add(&upload{rec: rec, data: data, contentType: contentType})

	if h.Hub != nil {
		h.Hub.Broadcast(events.CatalogEvent{
			Type:     events.TypeCustomTemplate,
			Template: id,
		})
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) serveUpload(c *gin.Context) {
	u, ok := h.uploads.get("custom-" + strings.TrimPrefix(c.Param("id"), "custom-"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Data(http.StatusOK, u.contentType, u.data)
}
