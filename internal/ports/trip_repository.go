package ports

import (
	"context"
	"errors"
	"hos-log-service/internal/domain"

	"github.com/google/uuid"
)

var ErrTripNotFound = errors.New("trip not found")

// Port: a boundary for storing and retrieving planned trips.
type TripRepository interface {
	// Return all trips, most recently created first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
	// Return one trip with its stops. Unknown ids yield ErrTripNotFound.
	GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	// Insert or replace a trip and its stops.
	SaveTrip(ctx context.Context, trip *domain.Trip) error
}
