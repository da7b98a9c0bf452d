package main

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/careerstack/resumegest/internal/api"
	"github.com/careerstack/resumegest/internal/config"
	"github.com/careerstack/resumegest/internal/pipeline"
	"github.com/careerstack/resumegest/internal/reader"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(log)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var remote *reader.RemoteReader
	if cfg.UseRemote {
		remote = reader.NewRemoteReader(cfg.ParserURL, cfg.ParserAPIKey)
		log.Info("using remote parse service", "url", cfg.ParserURL)
	} else {
		log.Info("using local format readers", "extensions", slices.Sorted(maps.Keys(reader.SupportedExtensions)))
	}

	orch := pipeline.NewOrchestrator(cfg, remote, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(orch, log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port, "workers", cfg.WorkerCount)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	orch.Stop()
	if remote != nil {
		remote.Close()
	}
	log.Info("shutdown complete")
}
