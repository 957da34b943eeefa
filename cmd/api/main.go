package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"situationmonitor/internal/config"
	"situationmonitor/internal/monitor"
	transporthttp "situationmonitor/internal/transport/http"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	staticSource, err := monitor.NewStaticFileSource("sample", cfg.StaticDataPath)
	if err != nil {
		log.Fatalf("init static source: %v", err)
	}

	ingestSource := monitor.NewIngestSource("ingest")

	sources, err := monitor.NewSourceRegistry(staticSource, ingestSource)
	if err != nil {
		log.Fatalf("init source registry: %v", err)
	}
	if cfg.EnableGdelt {
		sources.Add(monitor.NewGdeltSource("gdelt"))
		log.Printf("GDELT source enabled")
	}
	if cfg.EnableRSS {
		sources.Add(monitor.NewRSSSource("rss", nil))
		log.Printf("RSS source enabled with %d feeds", len(monitor.DefaultFeeds()))
	}

	engine := monitor.NewEngine()
	keywords := monitor.NewKeywordStore()

	pipeline, err := monitor.NewPipeline(sources, engine, keywords)
	if err != nil {
		log.Fatalf("init pipeline: %v", err)
	}
	pipeline.SentimentLimit = cfg.SentimentLimit

	snapshots := monitor.NewSnapshotStore()

	// Background refresh keeps the snapshot warm so the dashboard is never
	// waiting on upstream feeds.
	scheduler := cron.New()
	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		to := time.Now().UTC()
		snapshot, err := pipeline.Run(ctx, to.Add(-cfg.DefaultWindow), to, cfg.SentimentLimit)
		if err != nil {
			log.Printf("refresh: %v", err)
			return
		}
		snapshots.Set(snapshot)
		log.Printf("refresh: %d headlines, %s", len(snapshot.Headlines), snapshot.Summary.Status)
	}
	if _, err := scheduler.AddFunc(cfg.RefreshSpec, refresh); err != nil {
		log.Fatalf("schedule refresh %q: %v", cfg.RefreshSpec, err)
	}
	scheduler.Start()
	go refresh()

	server := transporthttp.NewServer(pipeline, cfg, ingestSource, snapshots)

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      withLogging(withCORS(server.Routes())),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("situation monitor API listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("signal received: %s, shutting down", sig)

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// Middleware: request logging
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)

		if r.Method == http.MethodOptions {
			log.Printf("[CORS preflight] %s %s %s", r.Method, r.URL.Path, duration)
		} else {
			log.Printf("%s %s %s", r.Method, r.URL.Path, duration)
		}
	})
}

// Middleware: allow the dashboard frontend to call the API cross-origin
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
