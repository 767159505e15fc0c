package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"energyadvice/internal/platform/config"
	"energyadvice/internal/platform/httpserver"
	"energyadvice/internal/platform/logger"
	"energyadvice/internal/platform/metrics"
	"energyadvice/internal/platform/postgres"
	"energyadvice/internal/platform/redis"
	surveyhandler "energyadvice/internal/survey/handler"
	surveymetrics "energyadvice/internal/survey/metrics"
	"energyadvice/internal/survey/service"
	"energyadvice/internal/survey/store"
	httptransport "energyadvice/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	envFile, loaded := config.LoadDotEnv()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if loaded {
		log.Info("loaded environment file", "path", envFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	surveyStore, checks, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := service.New(surveyStore,
		service.WithLogger(log),
		service.WithMetrics(surveymetrics.New(reg)),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        metrics.New(reg),
		Gatherer:       reg,
		RequestTimeout: cfg.RequestTimeout,
		HealthChecks:   checks,
		Modules:        []httptransport.Registrar{surveyhandler.New(svc, log)},
	})
	srv := httpserver.New(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting energy-advice", "addr", cfg.Addr, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openStore builds the configured survey store and the health checks for its
// backing service.
func openStore(ctx context.Context, cfg config.Server, log *slog.Logger) (service.Store, map[string]httptransport.HealthCheck, func(), error) {
	checks := map[string]httptransport.HealthCheck{}
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		checks["redis"] = client.Health
		return store.NewRedis(client.Client, store.WithTTL(cfg.SurveyTTL)), checks, func() {
			if err := client.Close(); err != nil {
				log.Warn("closing redis", "error", err)
			}
		}, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, noop, err
		}
		pg := store.NewPostgres(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, noop, err
		}
		checks["postgres"] = pg.Health
		return pg, checks, func() {
			if err := db.Close(); err != nil {
				log.Warn("closing postgres", "error", err)
			}
		}, nil

	default:
		log.Warn("using in-memory survey store; surveys are lost on restart")
		return store.NewInMemory(), checks, noop, nil
	}
}
