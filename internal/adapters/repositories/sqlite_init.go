package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/ports"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Initialize the trip schema. The DDL is portable across SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		depart_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id TEXT NOT NULL,
		trip_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		stop_type TEXT NOT NULL,
		eta TEXT NOT NULL,
		duration_min INTEGER NOT NULL,
		PRIMARY KEY (trip_id, seq)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_created_at
	ON trips(created_at);
	`

	statements := []string{
		createTripsQuery,
		createStopsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	ETA         string  `json:"etaIso"`
	DurationMin float64 `json:"durationMin"`
}

type TripSeed struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	DepartAt string     `json:"departAt"`
	Stops    []StopSeed `json:"stops"`
}

// Populate the repository with trips from a JSON file.
// Trips without an id get one derived from their name so reseeding replaces them.
func SeedFromJSON(ctx context.Context, repo ports.TripRepository, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed trips: read %q: %w", jsonPath, err)
	}

	var data []TripSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed trips: parse json: %w", err)
	}

	trips := make([]*domain.Trip, 0, len(data))
	for i, item := range data {
		trip, err := item.toDomain()
		if err != nil {
			return fmt.Errorf("seed trips: item at index %d: %w", i+1, err)
		}
		trips = append(trips, trip)
	}

	for _, t := range trips {
		if err := repo.SaveTrip(ctx, t); err != nil {
			return fmt.Errorf("seed trips: save trip %s: %w", t.ID, err)
		}
	}

	return nil
}

func (s TripSeed) toDomain() (*domain.Trip, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}

	var departAt time.Time
	if s.DepartAt != "" {
		t, err := domain.ParseInstant(s.DepartAt)
		if err != nil {
			return nil, fmt.Errorf("departAt: %w", err)
		}
		departAt = t
	}

	stops := make([]domain.Stop, 0, len(s.Stops))
	for j, st := range s.Stops {
		typ := domain.StopType(st.Type)
		if _, err := typ.Lane(); err != nil {
			return nil, fmt.Errorf("stop #%d: %w", j+1, err)
		}
		eta, err := domain.ParseInstant(st.ETA)
		if err != nil {
			return nil, fmt.Errorf("stop #%d: %w", j+1, err)
		}
		stops = append(stops, domain.Stop{ID: st.ID, Type: typ, ETA: eta, DurationMin: domain.MinutesFromFloat(st.DurationMin)})
	}

	trip := domain.NewTrip(name, departAt, stops)
	if s.ID != "" {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			return nil, fmt.Errorf("id %q: %w", s.ID, err)
		}
		trip.ID = id
	} else {
		trip.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("trip:"+name))
	}
	return trip, nil
}
