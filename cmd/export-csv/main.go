package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"memehub/internal/catalog"
	"memehub/pkg/database"
)

func main() {
	out := flag.String("out", "data/templates.csv", "output CSV path for the catalog snapshot")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := exportTemplates(ctx, db, *out); err != nil {
		log.Fatalf("export templates failed: %v", err)
	}

	log.Printf("exported catalog snapshot to %s", *out)
}

func exportTemplates(ctx context.Context, db *sql.DB, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"id", "name", "url", "category", "tags", "popularity",
		"source", "media", "subreddit", "upvotes",
	}); err != nil {
		return err
	}

	store := catalog.NewStore(db)
	recs, err := store.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	for _, r := range recs {
		if err := w.Write([]string{
			r.ID,
			r.Name,
			r.URL,
			r.Category,
			strings.Join(r.Tags, "|"),
			strconv.Itoa(r.Popularity),
			string(r.Source),
			string(r.Media),
			r.Subreddit,
			strconv.Itoa(r.Upvotes),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
