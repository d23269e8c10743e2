// Command oasis-worker consumes service-area recalculation requests from
// NATS, computes them against PostGIS data, and writes the results back.
//
// Configuration comes from the environment (a .env file is honored):
//
//	DATABASE_URL    Postgres/PostGIS connection string (required)
//	NATS_URL        NATS server URL (default nats://127.0.0.1:4222)
//	RECALC_SUBJECT  Recalculation subject (default oasis.recalc)
//	METRICS_ADDR    Listen address for /metrics (default :9090, empty disables)
//	RESOLUTION, MAX_ITERATIONS, TOLERANCE, DAMPING_FACTOR,
//	SIMPLIFICATION_TOLERANCE  Optional solver overrides
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	oasis "github.com/Egglessbonek/project-oasis"
	"github.com/Egglessbonek/project-oasis/internal/logging"
	"github.com/Egglessbonek/project-oasis/internal/metrics"
	"github.com/Egglessbonek/project-oasis/store"
	"github.com/Egglessbonek/project-oasis/worker"
)

func main() {
	logger := logging.NewSlogDefault()

	if err := run(logger); err != nil {
		logger.Fatal("worker exited", "error", err)
	}
}

func run(logger *logging.SlogLogger) error {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	natsURL := envOr("NATS_URL", nats.DefaultURL)
	metricsAddr := envOr("METRICS_ADDR", ":9090")

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}

	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return err
	}
	defer nc.Close()

	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "oasis")

	cfg, err := engineConfig()
	if err != nil {
		return err
	}
	engine, err := oasis.NewEngine(&cfg,
		oasis.WithLogger(logger),
		oasis.WithMetrics(collector),
	)
	if err != nil {
		return err
	}

	workerCfg := worker.Config{Subject: os.Getenv("RECALC_SUBJECT")}
	w, err := worker.New(&workerCfg, nc, store.NewPostgres(db, logger), engine,
		worker.WithLogger(logger),
		worker.WithMetrics(collector),
	)
	if err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return err
	}
	logger.Info("oasis worker running",
		"natsURL", natsURL,
		"subject", workerCfg.Subject,
		"metricsAddr", metricsAddr,
	)

	var metricsServer *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", "error", err)
	}
	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// engineConfig starts from the production defaults and applies any solver
// overrides present in the environment.
func engineConfig() (oasis.Config, error) {
	cfg := oasis.DefaultConfig()

	if err := envInt("RESOLUTION", &cfg.Resolution); err != nil {
		return cfg, err
	}
	if err := envInt("MAX_ITERATIONS", &cfg.MaxIterations); err != nil {
		return cfg, err
	}
	if err := envFloat("TOLERANCE", &cfg.Tolerance); err != nil {
		return cfg, err
	}
	if err := envFloat("DAMPING_FACTOR", &cfg.DampingFactor); err != nil {
		return cfg, err
	}
	if err := envFloat("SIMPLIFICATION_TOLERANCE", &cfg.SimplificationTolerance); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	*dst = parsed

	return nil
}

func envFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("parsing %s=%q: %w", key, v, err)
	}
	*dst = parsed

	return nil
}
