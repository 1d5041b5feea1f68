package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"servicecatalog/internal/catalog"
	"servicecatalog/internal/catalog/ports"
	"servicecatalog/internal/catalog/store/memory"
	pgstore "servicecatalog/internal/catalog/store/postgres"
	"servicecatalog/internal/platform/config"
	"servicecatalog/internal/platform/metrics"
	"servicecatalog/internal/platform/postgres"
	platformredis "servicecatalog/internal/platform/redis"
	httptransport "servicecatalog/internal/transport/http"
)

// app holds the wired engine and the resources that must be closed on exit.
type app struct {
	catalog     *catalog.Service
	registry    *prometheus.Registry
	httpMetrics *metrics.Metrics
	checks      map[string]httptransport.HealthCheck
	closers     []func() error
}

func buildApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (a *app, err error) {
	a = &app{
		registry: prometheus.NewRegistry(),
		checks:   make(map[string]httptransport.HealthCheck),
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.httpMetrics = metrics.New(a.registry)

	store, err := a.openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{
		catalog.WithLogger(log),
		catalog.WithRegisterer(a.registry),
	}
	rc, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		a.closers = append(a.closers, rc.Close)
		a.checks["redis"] = rc.Health
		opts = append(opts, catalog.WithRedis(rc.Client))
		log.Info("redis cache tier enabled")
	}

	a.catalog, err = catalog.New(cfg.Catalog, store, opts...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// openStore selects Postgres when a database URL is configured and the
// in-memory arena otherwise. A configured seed file is loaded into either.
func (a *app) openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (ports.Store, error) {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if db == nil {
		store := memory.New()
		if cfg.SeedFile == "" {
			log.Warn("no database configured and no seed file given; serving an empty catalog")
			return store, nil
		}
		if err := store.LoadSeedFile(cfg.SeedFile); err != nil {
			return nil, err
		}
		log.Info("in-memory catalog seeded", "seed_file", cfg.SeedFile)
		return store, nil
	}

	a.closers = append(a.closers, db.Close)
	a.checks["postgres"] = db.PingContext
	store := pgstore.New(db)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	if cfg.SeedFile != "" {
		if _, err := seedPostgres(ctx, db, store, cfg.SeedFile, log); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func seedPostgres(ctx context.Context, db *sql.DB, store *pgstore.PostgresStore, path string, log *slog.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	seed, err := memory.DecodeSeed(f)
	if err != nil {
		return 0, err
	}
	n, err := newSeedPostgresTx(db, store).Apply(ctx, seed)
	if err != nil {
		return 0, fmt.Errorf("apply seed: %w", err)
	}
	log.Info("postgres catalog seeded", "seed_file", path, "versions", n)
	return n, nil
}

func (a *app) routerDeps(log *slog.Logger) httptransport.Deps {
	return httptransport.Deps{
		Catalog:  a.catalog,
		Logger:   log,
		Metrics:  a.httpMetrics,
		Gatherer: a.registry,
		Checks:   a.checks,
	}
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}
