package catalog

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"memehub/pkg/models"
)

const (
	probeTimeout = 2 * time.Second
	probeBatch   = 5
	probeMaxAge  = time.Hour
)

// Prober confirms template URLs are actually reachable. Validation is
// lazy and best-effort: the catalog is served before any probing, and
// a record's Validated flag is set at most once.
type Prober struct {
	Client *http.Client
	Store  *Store // optional probe cache
}

func NewProber(store *Store) *Prober {
	return &Prober{
		Client: &http.Client{Timeout: probeTimeout},
		Store:  store,
	}
}

// Probe checks a single URL, consulting the probe cache first.
func (p *Prober) Probe(ctx context.Context, url string) bool {
	if p.Store != nil {
		if reachable, ok := p.Store.ProbeResult(ctx, url, probeMaxAge); ok {
			return reachable
		}
	}

	reachable := p.probeOnce(ctx, url)

	if p.Store != nil {
		if err := p.Store.SetProbeResult(ctx, url, reachable); err != nil {
			log.Printf("[probe] cache write failed for %s: %v", url, err)
		}
	}
	return reachable
}

func (p *Prober) probeOnce(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// ValidateTop probes the first max records in small batches and marks
// the reachable ones. Records past max are returned untouched so the
// caller is never blocked on a full catalog sweep.
func (p *Prober) ValidateTop(ctx context.Context, recs []models.TemplateRecord, max int) []models.TemplateRecord {
	if max > len(recs) {
		max = len(recs)
	}
	out := append([]models.TemplateRecord(nil), recs...)

	for start := 0; start < max; start += probeBatch {
		end := start + probeBatch
		if end > max {
			end = max
		}

		done := make(chan struct{}, end-start)
		for i := start; i < end; i++ {
			go func(i int) {
				out[i].Validated = p.Probe(ctx, out[i].URL)
				done <- struct{}{}
			}(i)
		}
		for i := start; i < end; i++ {
			<-done
		}

		if ctx.Err() != nil {
			break
		}
	}
	return out
}
