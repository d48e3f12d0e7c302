package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"memehub/pkg/models"
)

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		if strings.HasPrefix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(nil)
	assert.True(t, p.Probe(context.Background(), srv.URL+"/good.jpg"))
	assert.False(t, p.Probe(context.Background(), srv.URL+"/bad.jpg"))
}

func TestProbeUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(newTestStore(t))
	url := srv.URL + "/cached.jpg"

	assert.True(t, p.Probe(context.Background(), url))
	assert.True(t, p.Probe(context.Background(), url))
	assert.Equal(t, 1, hits)
}

func TestValidateTop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/bad") {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	recs := []models.TemplateRecord{
		{ID: "1", URL: srv.URL + "/good1.jpg"},
		{ID: "2", URL: srv.URL + "/bad.jpg"},
		{ID: "3", URL: srv.URL + "/good2.jpg"},
		{ID: "4", URL: srv.URL + "/never-probed.jpg"},
	}

	p := NewProber(nil)
	out := p.ValidateTop(context.Background(), recs, 3)

	assert.True(t, out[0].Validated)
	assert.False(t, out[1].Validated)
	assert.True(t, out[2].Validated)
	assert.False(t, out[3].Validated, "records past max stay untouched")

	// input slice is not mutated
	assert.False(t, recs[0].Validated)
}
