package main

import (
	"context"
	"hos-log-service/internal/adapters/repositories"
	"hos-log-service/internal/config"
	"hos-log-service/internal/platform/db"
	"log"
	"os"
	"strings"
	"time"
)

// dbtool prepares a Postgres database: creates the trip schema and loads the
// seed trips through the same repository the server uses.
func main() {
	config.LoadEnv()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/trips.json")

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn.DB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(ctx, repositories.NewSQLTripRepository(conn), seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
