package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type CatalogConfig struct {
	CacheTTL       time.Duration
	RedditCacheTTL time.Duration
	FetchTimeout   time.Duration
	Subreddits     []string
}

func LoadCatalogConfig() CatalogConfig {
	cfg := CatalogConfig{
		CacheTTL:       5 * time.Minute,
		RedditCacheTTL: 30 * time.Minute,
		FetchTimeout:   8 * time.Second,
	}

	if ttl := parseMinutes(os.Getenv("MEMEHUB_CACHE_TTL_MINUTES")); ttl > 0 {
		cfg.CacheTTL = ttl
	}
	if ttl := parseMinutes(os.Getenv("MEMEHUB_REDDIT_TTL_MINUTES")); ttl > 0 {
		cfg.RedditCacheTTL = ttl
	}
	if s := os.Getenv("MEMEHUB_FETCH_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.FetchTimeout = time.Duration(n) * time.Second
		}
	}

	// comma-separated override of the built-in subreddit list
	if s := os.Getenv("MEMEHUB_SUBREDDITS"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				cfg.Subreddits = append(cfg.Subreddits, p)
			}
		}
	}

	return cfg
}

type ServerConfig struct {
	Addr          string
	FeedAddr      string
	MaxUploadSize int64
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("MEMEHUB_HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	feedAddr := os.Getenv("MEMEHUB_FEED_ADDR")
	if feedAddr == "" {
		feedAddr = ":7070"
	}

	// oversized custom uploads are rejected before any processing
	maxUpload := int64(10 << 20)
	if s := os.Getenv("MEMEHUB_MAX_UPLOAD_MB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			maxUpload = int64(n) << 20
		}
	}

	return ServerConfig{Addr: addr, FeedAddr: feedAddr, MaxUploadSize: maxUpload}
}

func parseMinutes(s string) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Minute
}
