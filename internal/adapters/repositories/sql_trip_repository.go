package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/platform/obs"
	"hos-log-service/internal/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLTripRepository is the Postgres implementation of the TripRepository port.
type SQLTripRepository struct {
	DB *sqlx.DB
}

func NewSQLTripRepository(db *sqlx.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db}
}

func (s *SQLTripRepository) ListTrips(ctx context.Context) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.sql.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip repository: db is nil")
	}

	var tripRows []tripRow
	q := `
	SELECT trip_id, name, depart_at, created_at
	FROM trips
	ORDER BY created_at DESC, trip_id;
	`
	if err := s.DB.SelectContext(ctx, &tripRows, q); err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	if len(tripRows) == 0 {
		return []*domain.Trip{}, nil
	}

	ids := make([]string, 0, len(tripRows))
	for _, r := range tripRows {
		ids = append(ids, r.TripID)
	}

	var stopRows []stopRow
	q = `
	SELECT stop_id, trip_id, seq, stop_type, eta, duration_min
	FROM stops
	WHERE trip_id = ANY($1::text[])
	ORDER BY trip_id, seq;
	`
	if err := s.DB.SelectContext(ctx, &stopRows, q, ids); err != nil {
		return nil, fmt.Errorf("list trips: query stops table: %w", err)
	}

	byTrip := make(map[string][]stopRow, len(tripRows))
	for _, sr := range stopRows {
		byTrip[sr.TripID] = append(byTrip[sr.TripID], sr)
	}

	trips := make([]*domain.Trip, 0, len(tripRows))
	for _, r := range tripRows {
		t, err := r.toDomain(byTrip[r.TripID])
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (s *SQLTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "trips.sql.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("sql trip repository: db is nil")
	}

	var r tripRow
	q := `SELECT trip_id, name, depart_at, created_at FROM trips WHERE trip_id = $1;`
	err = s.DB.GetContext(ctx, &r, q, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %s: %w", id, ports.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: query trips table: %w", id, err)
	}

	var stops []stopRow
	q = `
	SELECT stop_id, trip_id, seq, stop_type, eta, duration_min
	FROM stops
	WHERE trip_id = $1
	ORDER BY seq;
	`
	if err := s.DB.SelectContext(ctx, &stops, q, r.TripID); err != nil {
		return nil, fmt.Errorf("get trip %s: query stops table: %w", id, err)
	}

	return r.toDomain(stops)
}

func (s *SQLTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.sql.SaveTrip")(&err)

	if s.DB == nil {
		return errors.New("sql trip repository: db is nil")
	}
	if trip == nil || trip.ID == uuid.Nil {
		return errors.New("save trip: missing trip id")
	}

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := `
	INSERT INTO trips (trip_id, name, depart_at, created_at)
	VALUES (:trip_id, :name, :depart_at, :created_at)
	ON CONFLICT (trip_id) DO UPDATE
	SET name = EXCLUDED.name,
		depart_at = EXCLUDED.depart_at,
		created_at = EXCLUDED.created_at;
	`
	if _, err := tx.NamedExecContext(ctx, q, newTripRow(trip)); err != nil {
		return fmt.Errorf("save trip %s: upsert trip: %w", trip.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops WHERE trip_id = $1;`, trip.ID.String()); err != nil {
		return fmt.Errorf("save trip %s: clear stops: %w", trip.ID, err)
	}

	if rows := newStopRows(trip); len(rows) > 0 {
		q = `
		INSERT INTO stops (stop_id, trip_id, seq, stop_type, eta, duration_min)
		VALUES (:stop_id, :trip_id, :seq, :stop_type, :eta, :duration_min)
		`
		if _, err := tx.NamedExecContext(ctx, q, rows); err != nil {
			return fmt.Errorf("save trip %s: insert stops: %w", trip.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip %s: commit tx: %w", trip.ID, err)
	}
	return nil
}
