// Command httpd runs the grievance intelligence HTTP service: it loads the
// trained classifier artifact, opens the submission store and serves the
// citizen and dashboard APIs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grievancesense/grievancesense/internal/analyzer"
	"github.com/grievancesense/grievancesense/internal/api"
	"github.com/grievancesense/grievancesense/internal/config"
	"github.com/grievancesense/grievancesense/internal/logging"
	"github.com/grievancesense/grievancesense/internal/model"
	"github.com/grievancesense/grievancesense/internal/scoring"
	"github.com/grievancesense/grievancesense/internal/store"
	"github.com/grievancesense/grievancesense/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "httpd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting grievance service",
		logging.String("version", cfg.Service.Version),
		logging.Int("port", cfg.Service.Port),
		logging.String("store_backend", cfg.Store.Backend),
	)

	artifact, err := model.Load(cfg.Model.ArtifactPath)
	if err != nil {
		return fmt.Errorf("load classifier artifact (run the trainer first): %w", err)
	}
	log.Info("classifier artifact loaded",
		logging.String("path", cfg.Model.ArtifactPath),
		logging.Any("categories", artifact.Categories()),
	)

	submissions, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open submission store: %w", err)
	}
	defer submissions.Close()

	tp := telemetry.NewProvider()
	core := analyzer.New(
		artifact,
		scoring.NewUrgencyScorer(nil),
		scoring.NewCredibilityScorer(scoring.CredibilityConfig{}),
		tp,
		log,
	)
	batch := analyzer.NewBatchAnalyzer(core, cfg.Service.BatchConcurrency, log)
	limiter := analyzer.NewRateLimiter(cfg.Service.BatchRPS, 0, log)

	handler := api.NewHandler(core, batch, limiter, submissions, tp, log)
	server := api.NewServer(handler, cfg, log)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		log.Info("shutting down", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func openStore(cfg config.Store) (store.SubmissionStore, error) {
	switch cfg.Backend {
	case "csv":
		return store.NewCSVStore(cfg.Path)
	case "sqlite":
		return store.NewSQLiteStore(cfg.Path)
	case "postgres":
		return store.NewPostgresStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
