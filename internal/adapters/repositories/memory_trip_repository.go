package repositories

import (
	"context"
	"errors"
	"fmt"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/ports"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// In-memory implementation of the TripRepository port, used by the CLI and tests.
type MemoryTripRepository struct {
	mu    sync.RWMutex
	trips map[uuid.UUID]*domain.Trip
}

func NewMemoryTripRepository(trips ...*domain.Trip) *MemoryTripRepository {
	r := &MemoryTripRepository{trips: make(map[uuid.UUID]*domain.Trip, len(trips))}
	for _, t := range trips {
		r.trips[t.ID] = cloneTrip(t)
	}
	return r
}

func (r *MemoryTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, cloneTrip(t))
	}
	slices.SortFunc(out, compareTripsNewestFirst)
	return out, nil
}

func (r *MemoryTripRepository) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[id]
	if !ok {
		return nil, fmt.Errorf("get trip %s: %w", id, ports.ErrTripNotFound)
	}
	return cloneTrip(t), nil
}

func (r *MemoryTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	if trip == nil || trip.ID == uuid.Nil {
		return errors.New("save trip: missing trip id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.ID] = cloneTrip(trip)
	return nil
}

func cloneTrip(t *domain.Trip) *domain.Trip {
	c := *t
	c.Stops = slices.Clone(t.Stops)
	return &c
}

func compareTripsNewestFirst(a, b *domain.Trip) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}
