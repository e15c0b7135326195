// cmd/worker-manager/server.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pawmatch-workers/internal/common/camunda"
	"pawmatch-workers/internal/common/database"
	"pawmatch-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// camundaHandler is what every worker package's Handler provides.
type camundaHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// readiness pings each backing service.
type readiness struct {
	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
	zeebe *camunda.Client
}

func (r readiness) check(ctx context.Context) map[string]string {
	status := map[string]string{}
	record := func(name string, err error) {
		if err != nil {
			status[name] = err.Error()
			return
		}
		status[name] = "ok"
	}
	record("postgres", r.pg.Ping(ctx))
	record("redis", r.redis.Ping(ctx))
	record("elasticsearch", r.es.Ping(ctx))
	record("zeebe", r.zeebe.HealthCheck(ctx))
	return status
}

func newServer(port int, ready readiness, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := ready.check(ctx)
		code, status := http.StatusOK, "ready"
		for name, result := range checks {
			if result != "ok" {
				code, status = http.StatusServiceUnavailable, "not ready"
				log.Warn("readiness check failed", map[string]interface{}{"dependency": name, "error": result})
			}
		}
		writeJSON(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func serve(srv *http.Server, log logger.Logger) {
	log.Info("health/metrics server listening", map[string]interface{}{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("health/metrics server failed", map[string]interface{}{"error": err})
	}
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
