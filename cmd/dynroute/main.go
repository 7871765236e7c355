// Command dynroute serves a road network with live weight effects over
// HTTP and WebSocket.
//
// Configuration is read from the environment (a .env file is honored
// when present):
//
//	DYNROUTE_ADDR             listen address (default :8080)
//	DYNROUTE_DB               SQLite database path (default roads.db)
//	DYNROUTE_EFFECT_THRESHOLD jam/light midpoint proximity (default 20)
//	DYNROUTE_SNAP_THRESHOLD   endpoint snap distance (default 50)
//	DYNROUTE_HEURISTIC_SCALE  search heuristic scale (default 100)
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/dynroute/engine"
	"github.com/katalvlaran/dynroute/roadgraph"
	"github.com/katalvlaran/dynroute/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	addr := envString("DYNROUTE_ADDR", ":8080")
	dbPath := envString("DYNROUTE_DB", "roads.db")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, stats, err := roadgraph.LoadSQLite(ctx, dbPath, log)
	if err != nil {
		return err
	}
	if stats.Skipped() > 0 {
		log.Warn("store contained malformed rows", "db", dbPath, "skipped", stats.Skipped())
	}

	opts := []engine.Option{
		engine.WithEffectThreshold(envFloat("DYNROUTE_EFFECT_THRESHOLD", 20)),
		engine.WithSnapThreshold(envFloat("DYNROUTE_SNAP_THRESHOLD", 50)),
		engine.WithHeuristicScale(envFloat("DYNROUTE_HEURISTIC_SCALE", 100)),
	}
	e, err := engine.New(g, nil, opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	srv := server.New(e, log)
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("ignoring invalid numeric env var", "key", key, "value", v)

		return fallback
	}

	return f
}
