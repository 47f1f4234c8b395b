package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/deckdown/internal/api"
	"github.com/dgallion1/deckdown/internal/config"
	"github.com/dgallion1/deckdown/internal/library"
	"github.com/dgallion1/deckdown/internal/pipeline"
	"github.com/dgallion1/deckdown/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the deck library and renderer.
	store, err := library.NewStore(cfg.DeckDir, log)
	if err != nil {
		log.Error("failed to open deck library", "error", err)
		os.Exit(1)
	}
	renderer := render.NewRenderer()

	// Initialize the import pipeline.
	orch := pipeline.NewOrchestrator(cfg, store, renderer, log)
	orch.Start(ctx)

	// Initialize the HTTP server.
	srv := api.NewServer(orch, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop accepting requests before closing the pipeline queue.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
	}()

	log.Info("starting deckdown", "port", cfg.Port, "deck_dir", cfg.DeckDir)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
