package services

import (
	"context"
	"fmt"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/platform/obs"
	"hos-log-service/internal/ports"
	"time"

	"github.com/google/uuid"
)

type TripLogOptions struct {
	// SeedFirstDay prepends pre-trip OFF time to the first day bucket.
	SeedFirstDay bool
	FillGaps     bool
	Tolerance    time.Duration
}

// PlanTripLog loads a trip and derives its single-day timeline together with
// one windowed view per calendar day the trip touches.
func PlanTripLog(
	ctx context.Context,
	repo ports.TripRepository,
	tripID uuid.UUID,
	opts TripLogOptions,
) (tripLog *domain.TripLog, err error) {
	defer obs.Time(ctx, "plan_trip_log")(&err)

	trip, err := repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("plan trip log: get trip %s: %w", tripID, err)
	}

	tripLog, err = BuildTripLog(trip, opts)
	if err != nil {
		return nil, fmt.Errorf("plan trip log: %w", err)
	}
	return tripLog, nil
}

// BuildTripLog is the storage-free part of PlanTripLog.
func BuildTripLog(trip *domain.Trip, opts TripLogOptions) (*domain.TripLog, error) {
	timeline, err := DeriveDayTimeline(trip.Stops, trip.Start())
	if err != nil {
		return nil, fmt.Errorf("trip %s: %w", trip.ID, err)
	}

	segments, err := BuildSegments(trip.Start(), trip.Stops)
	if err != nil {
		return nil, fmt.Errorf("trip %s: %w", trip.ID, err)
	}

	buckets := BucketByDay(segments)
	days := make([]domain.DayWindow, 0, len(buckets))
	for i, b := range buckets {
		w, err := WindowDay(b, WindowOptions{
			IncludeLeadingOffSeed: opts.SeedFirstDay && i == 0,
			FillGaps:              opts.FillGaps,
			Tolerance:             opts.Tolerance,
		})
		if err != nil {
			return nil, fmt.Errorf("trip %s: %w", trip.ID, err)
		}
		days = append(days, w)
	}

	return &domain.TripLog{Trip: trip, Timeline: timeline, Buckets: buckets, Days: days}, nil
}
