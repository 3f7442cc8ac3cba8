package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hos-log-service/internal/adapters/repositories"
	"hos-log-service/internal/api"
	"hos-log-service/internal/config"
	"hos-log-service/internal/platform/db"
	"hos-log-service/internal/ports"
	"hos-log-service/internal/services"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// main is the application composition root.
// It picks the trip store (SQLite or Postgres) behind the repository port and
// starts the HTTP server.
func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	layouts, err := config.LoadLayouts(cfg.LayoutsPath)
	if err != nil {
		log.Fatal(err)
	}

	conn, repo, err := openStore(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed demo trips on startup for local runs.
	if err := initAndSeed(conn, repo, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.RouterConfig{
		Repo:    repo,
		DB:      conn,
		Layouts: layouts,
		TripLog: services.TripLogOptions{
			SeedFirstDay: true,
			Tolerance:    services.DefaultConnectorTolerance,
		},
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})
	defer router.Close()

	// No WriteTimeout: /live connections stay open for the whole session.
	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func openStore(cfg config.Config) (*sql.DB, ports.TripRepository, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return conn.DB, repositories.NewSQLTripRepository(conn), nil
	default:
		conn, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return conn, repositories.NewSqliteTripRepository(conn), nil
	}
}

func initAndSeed(conn *sql.DB, repo ports.TripRepository, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); errors.Is(err, fs.ErrNotExist) {
		log.Printf("No seed file at %s (skipping seed)", seedPath)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repositories.SeedFromJSON(ctx, repo, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
