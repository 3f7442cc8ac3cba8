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
)

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Return all trips stored in the database, newest first.
func (s *SqliteTripRepository) ListTrips(ctx context.Context) (_ []*domain.Trip, err error) {
	defer obs.Time(ctx, "trips.sqlite.ListTrips")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		name,
		depart_at,
		created_at
	FROM trips
	ORDER BY created_at DESC, trip_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	tripRows := make([]tripRow, 0, 16)
	for rows.Next() {
		var r tripRow
		if err := rows.Scan(&r.TripID, &r.Name, &r.DepartAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		tripRows = append(tripRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	trips := make([]*domain.Trip, 0, len(tripRows))
	for _, r := range tripRows {
		stops, err := s.listStops(ctx, r.TripID)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		t, err := r.toDomain(stops)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, nil
}

func (s *SqliteTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "trips.sqlite.GetTrip")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		name,
		depart_at,
		created_at
	FROM trips
	WHERE trip_id = ?;
	`
	var r tripRow
	err = s.DB.QueryRowContext(ctx, query, id.String()).Scan(&r.TripID, &r.Name, &r.DepartAt, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get trip %s: %w", id, ports.ErrTripNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %s: query trips table: %w", id, err)
	}

	stops, err := s.listStops(ctx, r.TripID)
	if err != nil {
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}

	return r.toDomain(stops)
}

// Insert or replace a trip together with its stops in one transaction.
func (s *SqliteTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) (err error) {
	defer obs.Time(ctx, "trips.sqlite.SaveTrip")(&err)

	if s.DB == nil {
		return errors.New("sqlite trip repository: DB is nil")
	}
	if trip == nil || trip.ID == uuid.Nil {
		return errors.New("save trip: missing trip id")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	tr := newTripRow(trip)
	query := `
	INSERT OR REPLACE INTO trips (
		trip_id,
		name,
		depart_at,
		created_at
	)
	VALUES (?, ?, ?, ?);
	`
	if _, err := tx.ExecContext(ctx, query, tr.TripID, tr.Name, tr.DepartAt, tr.CreatedAt); err != nil {
		return fmt.Errorf("save trip %s: insert trip: %w", trip.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM stops WHERE trip_id = ?;`, tr.TripID); err != nil {
		return fmt.Errorf("save trip %s: clear stops: %w", trip.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (
		stop_id,
		trip_id,
		seq,
		stop_type,
		eta,
		duration_min
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save trip %s: prepare insert: %w", trip.ID, err)
	}
	defer stmt.Close()

	for _, sr := range newStopRows(trip) {
		if _, err := stmt.ExecContext(ctx, sr.StopID, sr.TripID, sr.Seq, sr.StopType, sr.ETA, sr.DurationMin); err != nil {
			return fmt.Errorf("save trip %s: insert stop seq=%d: %w", trip.ID, sr.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save trip %s: commit tx: %w", trip.ID, err)
	}

	return nil
}

func (s *SqliteTripRepository) listStops(ctx context.Context, tripID string) ([]stopRow, error) {
	query := `
	SELECT
		stop_id,
		trip_id,
		seq,
		stop_type,
		eta,
		duration_min
	FROM stops
	WHERE trip_id = ?
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("list stops: query stops table: %w", err)
	}
	defer rows.Close()

	out := make([]stopRow, 0, 8)
	for rows.Next() {
		var r stopRow
		if err := rows.Scan(&r.StopID, &r.TripID, &r.Seq, &r.StopType, &r.ETA, &r.DurationMin); err != nil {
			return nil, fmt.Errorf("list stops: scan row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stops: row iteration: %w", err)
	}

	return out, nil
}
