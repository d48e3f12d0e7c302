package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"memehub/internal/api"
	"memehub/internal/catalog"
	"memehub/internal/events"
	"memehub/internal/source"
	"memehub/pkg/database"
	"memehub/pkg/utils"
)

func main() {
	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	catalogCfg := utils.LoadCatalogConfig()
	serverCfg := utils.LoadServerConfig()

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// Start the event feed first (so you notice binding errors early)
	hub := events.NewHub()
	router.GET("/ws", events.WSHandler(hub))
	feedSrv := events.NewServer(serverCfg.FeedAddr, hub)

	imgflip := source.NewImgflip()
	imgflip.Client.Timeout = catalogCfg.FetchTimeout

	reddit := source.NewReddit()
	reddit.Client.Timeout = catalogCfg.FetchTimeout
	if len(catalogCfg.Subreddits) > 0 {
		reddit.Subreddits = catalogCfg.Subreddits
	}

	store := catalog.NewStore(db)
	agg := catalog.NewAggregator(
		imgflip,
		source.Cached(reddit, catalogCfg.RedditCacheTTL),
		source.NewCurated(),
	)
	agg.Store = store
	agg.TTL = catalogCfg.CacheTTL

	prober := catalog.NewProber(store)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":       "not_ready",
				"db_error":     err.Error(),
				"feed_clients": stats.FeedClients,
				"ws_clients":   stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       "ready",
			"db":           "ok",
			"feed_clients": stats.FeedClients,
			"ws_clients":   stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db":           dbCfg.Path,
			"feed_clients": stats.FeedClients,
			"ws_clients":   stats.WSClients,
		})
	})

	handler := api.NewHandler(agg, prober, store, hub, serverCfg.MaxUploadSize)
	handler.RegisterRoutes(router.Group("/api"))

	httpSrv := &http.Server{
		Addr:    serverCfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := feedSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", serverCfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := feedSrv.Close(); err != nil {
		log.Printf("feed shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}
