package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Panashe816/viral-news-backend/internal/cache"
	"github.com/Panashe816/viral-news-backend/internal/config"
	"github.com/Panashe816/viral-news-backend/internal/feed"
	"github.com/Panashe816/viral-news-backend/internal/publisher"
	"github.com/Panashe816/viral-news-backend/internal/server"
	"github.com/Panashe816/viral-news-backend/internal/storage"
)

func main() {
	cfg := config.Get()

	db, err := storage.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Printf("ERROR: failed to connect to db %v", err)
		return
	}
	defer db.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	articleStorage := storage.NewArticleStorage(db)
	if err := articleStorage.Ensure(ctx); err != nil {
		log.Printf("ERROR: failed to ensure schema %v", err)
		return
	}

	var (
		feedService   = feed.NewService(articleStorage)
		homepageCache = cache.New(cfg.CacheTTL)
		srv           = server.New(feedService, homepageCache)
	)

	if cfg.PublisherEnabled {
		pub := publisher.New(articleStorage, cfg.PublishInterval)
		go func(ctx context.Context) {
			if err := pub.Run(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Println("ERROR: failed to run publisher")
					return
				}

				log.Println("Publisher has stopped")
			}
		}(ctx)
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      srv.Handler(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("API server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ERROR: server stopped: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down API server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: server shutdown failed: %v", err)
		return
	}
	log.Println("API server gracefully stopped")
}
