package repositories

import (
	"fmt"
	"hos-log-service/internal/domain"
	"time"

	"github.com/google/uuid"
)

// Row shapes shared by the SQL adapters. Instants are stored as RFC 3339
// text in UTC so the same schema works on SQLite and Postgres.
type tripRow struct {
	TripID    string `db:"trip_id"`
	Name      string `db:"name"`
	DepartAt  string `db:"depart_at"`
	CreatedAt string `db:"created_at"`
}

type stopRow struct {
	StopID      string `db:"stop_id"`
	TripID      string `db:"trip_id"`
	Seq         int    `db:"seq"`
	StopType    string `db:"stop_type"`
	ETA         string `db:"eta"`
	DurationMin int    `db:"duration_min"`
}

func newTripRow(t *domain.Trip) tripRow {
	return tripRow{
		TripID:    t.ID.String(),
		Name:      t.Name,
		DepartAt:  formatTime(t.DepartAt),
		CreatedAt: formatTime(t.CreatedAt),
	}
}

func newStopRows(t *domain.Trip) []stopRow {
	rows := make([]stopRow, 0, len(t.Stops))
	for i, s := range t.Stops {
		rows = append(rows, stopRow{
			StopID:      s.ID,
			TripID:      t.ID.String(),
			Seq:         i + 1,
			StopType:    string(s.Type),
			ETA:         formatTime(s.ETA),
			DurationMin: s.DurationMin,
		})
	}
	return rows
}

func (r tripRow) toDomain(stops []stopRow) (*domain.Trip, error) {
	id, err := uuid.Parse(r.TripID)
	if err != nil {
		return nil, fmt.Errorf("trip row %q: parse id: %w", r.TripID, err)
	}

	departAt, err := parseTime(r.DepartAt)
	if err != nil {
		return nil, fmt.Errorf("trip row %s: depart_at: %w", r.TripID, err)
	}
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("trip row %s: created_at: %w", r.TripID, err)
	}

	trip := &domain.Trip{
		ID:        id,
		Name:      r.Name,
		DepartAt:  departAt,
		CreatedAt: createdAt,
		Stops:     make([]domain.Stop, 0, len(stops)),
	}
	for _, s := range stops {
		eta, err := parseTime(s.ETA)
		if err != nil {
			return nil, fmt.Errorf("trip row %s: stop %q eta: %w", r.TripID, s.StopID, err)
		}
		trip.Stops = append(trip.Stops, domain.Stop{
			ID:          s.StopID,
			Type:        domain.StopType(s.StopType),
			ETA:         eta,
			DurationMin: s.DurationMin,
		})
	}
	return trip, nil
}

// storedTimeLayout is RFC 3339 with a fixed nine-digit fraction, so stored
// UTC times sort as text in time order (ORDER BY created_at).
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseInstant(s)
}
