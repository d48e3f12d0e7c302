package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"memehub/pkg/models"
)

// DefaultSubreddits are the template-heavy channels queried by the
// reddit source when no override is configured.
var DefaultSubreddits = []string{
	"MemeTemplatesOfficial",
	"memetemplates",
	"MemeTemplate",
	"blanktemplate",
	"TemplateMemes",
	"dankmemes",
	"memes",
	"wholesomememes",
	"PrequelMemes",
	"HistoryMemes",
	"ProgrammerHumor",
	"ReactionMemes",
	"AdviceAnimals",
	"MemeEconomy",
	"InsiderMemeTrading",
}

// DefaultTimeframes are the top-listing windows queried per subreddit.
var DefaultTimeframes = []string{"week", "month", "year"}

const (
	minUpvotes     = 5
	maxRedditItems = 200
	nameMaxRunes   = 50

	// delay between request launches against the single reddit host,
	// so a full fan-out does not trip its rate limiter at once
	launchStagger = 150 * time.Millisecond
)

// Reddit fetches meme templates from subreddit top listings. Each
// (subreddit, timeframe) pair is one branch of a concurrent fan-out;
// a failed branch contributes nothing and never fails the fetch.
type Reddit struct {
	BaseURL    string
	Client     *http.Client
	Subreddits []string
	Timeframes []string
	Stagger    time.Duration
}

func NewReddit() *Reddit {
	base := "https://www.reddit.com"
	if v := os.Getenv("MEMEHUB_REDDIT_URL"); v != "" {
		base = v
	}
	return &Reddit{
		BaseURL:    base,
		Client:     &http.Client{Timeout: 8 * time.Second},
		Subreddits: DefaultSubreddits,
		Timeframes: DefaultTimeframes,
		Stagger:    launchStagger,
	}
}

func (s *Reddit) Name() string { return "reddit" }

type redditPost struct {
	ID        string
	Title     string
	URL       string
	Thumbnail string
	Upvotes   int
	Author    string
	Permalink string
	Subreddit string
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID        string  `json:"id"`
				Title     string  `json:"title"`
				URL       string  `json:"url"`
				Thumbnail string  `json:"thumbnail"`
				Ups       int     `json:"ups"`
				Author    string  `json:"author"`
				CreatedAt float64 `json:"created_utc"`
				Permalink string  `json:"permalink"`
				Subreddit string  `json:"subreddit"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetch fans out over subreddits x timeframes, waits for every branch,
// and merges whatever succeeded: top entries by engagement, deduplicated
// by URL, mapped into TemplateRecord.
func (s *Reddit) Fetch(ctx context.Context) ([]models.TemplateRecord, error) {
	type branch struct {
		subreddit string
		timeframe string
	}

	var branches []branch
	for _, sub := range s.Subreddits {
		for _, tf := range s.Timeframes {
			branches = append(branches, branch{sub, tf})
		}
	}

	results := make([][]redditPost, len(branches))
	var wg sync.WaitGroup

	for i, b := range branches {
		wg.Add(1)
		go func(i int, b branch) {
			defer wg.Done()

			// stagger launches against the shared host
			select {
			case <-time.After(time.Duration(i) * s.Stagger):
			case <-ctx.Done():
				return
			}

			posts, err := s.fetchListing(ctx, b.subreddit, b.timeframe)
			if err != nil {
				log.Printf("[reddit] r/%s (%s): %v", b.subreddit, b.timeframe, err)
				return
			}
			results[i] = posts
		}(i, b)
	}
	wg.Wait()

	var all []redditPost
	for _, posts := range results {
		all = append(all, posts...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("reddit: all %d branches failed or returned nothing", len(branches))
	}

	// first occurrence wins within the source too
	seen := make(map[string]struct{}, len(all))
	unique := all[:0]
	for _, p := range all {
		if _, ok := seen[p.URL]; ok {
			continue
		}
		seen[p.URL] = struct{}{}
		unique = append(unique, p)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Upvotes > unique[j].Upvotes
	})
	if len(unique) > maxRedditItems {
		unique = unique[:maxRedditItems]
	}

	out := make([]models.TemplateRecord, 0, len(unique))
	for rank, p := range unique {
		pop := 100 - rank/2
		if pop < 10 {
			pop = 10
		}
		out = append(out, models.TemplateRecord{
			ID:         "reddit-" + p.ID,
			Name:       truncateName(p.Title),
			URL:        p.URL,
			Tags:       DeriveTags(p.Title, p.Subreddit, "reddit"),
			Popularity: pop,
			Source:     models.SourceReddit,
			Media:      MediaKindOf(p.URL),
			Subreddit:  p.Subreddit,
			Upvotes:    p.Upvotes,
			Author:     p.Author,
			Permalink:  "https://reddit.com" + p.Permalink,
			Thumbnail:  p.Thumbnail,
		})
	}
	return out, nil
}

// fetchListing pulls one subreddit top listing and applies the media
// inclusion filter and the engagement threshold.
func (s *Reddit) fetchListing(ctx context.Context, subreddit, timeframe string) ([]redditPost, error) {
	url := fmt.Sprintf("%s/r/%s/top.json?limit=100&t=%s", s.BaseURL, subreddit, timeframe)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "memehub/1.0 (template fetcher)")
	req.Header.Set("Accept", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	posts := make([]redditPost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		d := child.Data
		if d.ID == "" || !IsMediaURL(d.URL) || d.Ups <= minUpvotes {
			continue
		}
		posts = append(posts, redditPost{
			ID:        d.ID,
			Title:     d.Title,
			URL:       d.URL,
			Thumbnail: d.Thumbnail,
			Upvotes:   d.Ups,
			Author:    d.Author,
			Permalink: d.Permalink,
			Subreddit: d.Subreddit,
		})
	}
	return posts, nil
}

func truncateName(title string) string {
	runes := []rune(title)
	if len(runes) <= nameMaxRunes {
		return title
	}
	return string(runes[:nameMaxRunes]) + "..."
}
