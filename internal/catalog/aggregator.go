package catalog

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"memehub/internal/source"
	"memehub/pkg/models"
)

// reddit entries above this engagement outrank everything else
const highEngagement = 100

// Result is what catalog consumers get: the merged records, whether
// the call was served from cache, and the record count.
type Result struct {
	Records []models.TemplateRecord `json:"records"`
	Cached  bool                    `json:"cached"`
	Total   int                     `json:"total"`
}

// Aggregator merges all template sources into one deduplicated,
// categorized, ranked catalog. Its public contract never signals
// failure: partial source failures degrade silently, total failure is
// masked by the stale snapshot or the built-in fallback list, so the
// consuming UI always has something to display.
type Aggregator struct {
	Primary source.Source   // primary catalog; fallback list substitutes on failure
	Extras  []source.Source // aggregator-sourced + curated, in priority order
	Store   *Store          // optional stale-snapshot store
	TTL     time.Duration

	mu        sync.Mutex
	cached    []models.TemplateRecord
	fetchedAt time.Time
}

func NewAggregator(primary source.Source, extras ...source.Source) *Aggregator {
	return &Aggregator{
		Primary: primary,
		Extras:  extras,
		TTL:     5 * time.Minute,
	}
}

// Catalog returns the merged catalog. Within the TTL window it returns
// the cached snapshot without network I/O; concurrent callers during a
// refresh block on the same fetch rather than launching their own.
func (a *Aggregator) Catalog(ctx context.Context) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached != nil && time.Since(a.fetchedAt) < a.TTL {
		return Result{Records: a.cached, Cached: true, Total: len(a.cached)}
	}

	merged := a.fetchAndMerge(ctx)
	if len(merged) == 0 {
		// fresh fetch came up empty: stale data beats an empty catalog
		if a.cached != nil {
			log.Printf("[catalog] all sources failed, serving stale cache (%d records)", len(a.cached))
			return Result{Records: a.cached, Cached: true, Total: len(a.cached)}
		}
		if a.Store != nil {
			if snap, err := a.Store.LoadSnapshot(ctx); err == nil && len(snap) > 0 {
				log.Printf("[catalog] serving stored snapshot (%d records)", len(snap))
				a.cached = snap
				a.fetchedAt = time.Now()
				return Result{Records: snap, Cached: true, Total: len(snap)}
			}
		}
		log.Printf("[catalog] no sources and no snapshot, serving built-in fallback")
		merged = source.Fallback()
	}

	a.cached = merged
	a.fetchedAt = time.Now()

	if a.Store != nil {
		if err := a.Store.SaveSnapshot(ctx, merged); err != nil {
			log.Printf("[catalog] snapshot save failed: %v", err)
		}
	}

	return Result{Records: merged, Cached: false, Total: len(merged)}
}

// Invalidate drops the cached snapshot so the next Catalog call
// refetches.
func (a *Aggregator) Invalidate() {
	a.mu.Lock()
	a.cached = nil
	a.fetchedAt = time.Time{}
	a.mu.Unlock()
}

type sourceResult struct {
	name    string
	records []models.TemplateRecord
	err     error
}

// fetchAndMerge fans out to every source, waits for all of them, and
// merges whatever succeeded in priority order.
func (a *Aggregator) fetchAndMerge(ctx context.Context) []models.TemplateRecord {
	sources := append([]source.Source{a.Primary}, a.Extras...)
	results := make([]sourceResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			log.Printf("[catalog] fetching from %s", src.Name())
			recs, err := src.Fetch(ctx)
			results[i] = sourceResult{name: src.Name(), records: recs, err: err}
		}(i, src)
	}
	wg.Wait()

	var all []models.TemplateRecord
	for i, res := range results {
		if res.err != nil {
			log.Printf("[catalog] source %s failed: %v", res.name, res.err)
			if i == 0 {
				// primary catalog down: substitute the built-in list at
				// the head so its entries win URL ties
				all = append(all, source.Fallback()...)
			}
			continue
		}
		log.Printf("[catalog] source %s: %d entries", res.name, len(res.records))
		all = append(all, res.records...)
	}

	merged := dedupeByURL(all)
	for i := range merged {
		normalize(&merged[i])
	}
	rank(merged)
	return merged
}

// dedupeByURL keeps the first occurrence of each canonical URL, so
// earlier (higher-priority) sources win ties.
func dedupeByURL(recs []models.TemplateRecord) []models.TemplateRecord {
	seen := make(map[string]struct{}, len(recs))
	out := make([]models.TemplateRecord, 0, len(recs))
	for _, r := range recs {
		if r.URL == "" {
			continue
		}
		if _, ok := seen[r.URL]; ok {
			continue
		}
		seen[r.URL] = struct{}{}
		out = append(out, r)
	}
	return out
}

// normalize fills the category and tag set of a record that arrived
// without them.
func normalize(r *models.TemplateRecord) {
	if len(r.Tags) == 0 {
		channel := r.Subreddit
		if channel == "" {
			channel = string(r.Source)
		}
		r.Tags = source.DeriveTags(r.Name, channel)
	}
	if r.Category == "" {
		r.Category = Categorize(r.Name, r.Tags)
	}
	if r.Media == "" {
		r.Media = source.MediaKindOf(r.URL)
	}
}

// rank orders the catalog: aggregator-sourced entries with very high
// engagement first by engagement descending, everything else by
// popularity descending. The sort is stable so equal records keep
// their merge order.
func rank(recs []models.TemplateRecord) {
	hot := func(r models.TemplateRecord) bool {
		return r.Source == models.SourceReddit && r.Upvotes > highEngagement
	}
	sort.SliceStable(recs, func(i, j int) bool {
		hi, hj := hot(recs[i]), hot(recs[j])
		if hi != hj {
			return hi
		}
		if hi {
			return recs[i].Upvotes > recs[j].Upvotes
		}
		return recs[i].Popularity > recs[j].Popularity
	})
}
