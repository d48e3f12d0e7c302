package main

import (
	"context"
	"log"
	"time"

	"memehub/internal/catalog"
	"memehub/internal/source"
	"memehub/pkg/database"
	"memehub/pkg/utils"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	cfg := utils.LoadCatalogConfig()

	imgflip := source.NewImgflip()
	imgflip.Client.Timeout = cfg.FetchTimeout

	reddit := source.NewReddit()
	reddit.Client.Timeout = cfg.FetchTimeout
	if len(cfg.Subreddits) > 0 {
		reddit.Subreddits = cfg.Subreddits
	}

	agg := catalog.NewAggregator(
		imgflip,
		reddit,
		source.NewCurated(),
	)
	agg.Store = catalog.NewStore(db)
	agg.TTL = cfg.CacheTTL

	res := agg.Catalog(ctx)
	log.Printf("merged templates: %d (cached=%v)", res.Total, res.Cached)

	stats := catalog.Stats(res.Records)
	log.Printf("by source: imgflip=%d reddit=%d custom=%d categories=%d",
		stats.Imgflip, stats.Reddit, stats.Custom, stats.Categories)

	log.Println("catalog snapshot saved")
}
