// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pawmatch-workers/internal/catalog"
	"pawmatch-workers/internal/common/camunda"
	"pawmatch-workers/internal/common/config"
	"pawmatch-workers/internal/common/database"
	"pawmatch-workers/internal/common/logger"
	"pawmatch-workers/internal/common/observability"
	"pawmatch-workers/internal/common/validation"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying", map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func fatal(log logger.Logger, msg string, err error) {
	log.Error(msg, map[string]interface{}{"error": err})
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format).
		WithFields(map[string]interface{}{"service": cfg.App.Name, "env": cfg.App.Environment})
	log.Info("starting worker manager", map[string]interface{}{"version": cfg.App.Version})

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("otel metrics exporter unavailable", map[string]interface{}{"error": err})
	}
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		fatal(log, "zeebe client failed after retries", err)
	}
	defer zeebe.Close()
	log.Info("Zeebe client connected", nil)

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		fatal(log, "postgres failed after retries", err)
	}
	defer pg.Close()
	if err := pg.EnsureSchema(ctx); err != nil {
		fatal(log, "postgres schema failed", err)
	}
	log.Info("PostgreSQL connected", nil)

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		fatal(log, "redis failed after retries", err)
	}
	defer rdb.Close()
	log.Info("Redis connected", nil)

	// --- Elasticsearch ---
	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping(ctx)
	}, 15, 2*time.Second, log, "Elasticsearch connection")
	if err != nil {
		fatal(log, "elasticsearch failed after retries", err)
	}
	log.Info("Elasticsearch connected", nil)

	validator, err := validation.LoadValidator(cfg.Registry.Path)
	if err != nil {
		fatal(log, "activity registry failed", err)
	}

	repo := catalog.NewRepository(pg.DB)
	store := catalog.NewStore(repo, catalog.NewCache(rdb.Client, cfg.Matching.ProfileTTL(), cfg.Matching.CatalogTTL()), log)
	search := catalog.NewSearch(es.Client, cfg.Matching.CatalogIndex)
	if err := syncSearchIndex(ctx, search, repo, log); err != nil {
		// search-animals keeps serving whatever the index already holds
		log.Warn("catalog index sync failed", map[string]interface{}{"error": err})
	}

	workers := camunda.NewWorkerSet(zeebe.GetClient(), obs, log)
	started := registerWorkers(ctx, cfg, workers, deps{
		store:     store,
		search:    search,
		validator: validator,
		log:       log,
	})
	log.Info("workers registered", map[string]interface{}{"count": started})

	srv := newServer(cfg.Server.Port, readiness{pg: pg, redis: rdb, es: es, zeebe: zeebe}, log)
	go serve(srv, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping workers", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	workers.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("health/metrics server shutdown failed", map[string]interface{}{"error": err})
	}
	log.Info("worker manager stopped", nil)
}

// syncSearchIndex creates the catalog index when missing and reloads every
// adoptable animal from Postgres.
func syncSearchIndex(ctx context.Context, search *catalog.Search, repo *catalog.Repository, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := search.EnsureIndex(ctx); err != nil {
		return err
	}
	animals, err := repo.ListAvailable(ctx, false, 0)
	if err != nil {
		return err
	}
	n, err := search.Reindex(ctx, animals)
	if err != nil {
		return err
	}
	log.Info("catalog index synced", map[string]interface{}{"index": search.Index(), "animals": n})
	return nil
}
