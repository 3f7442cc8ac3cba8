package repositories

import (
	"context"
	"errors"
	"hos-log-service/internal/domain"
	"hos-log-service/internal/platform/db"
	"hos-log-service/internal/ports"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrip(name string, createdAt time.Time) *domain.Trip {
	depart := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	trip := domain.NewTrip(name, depart, []domain.Stop{
		{Type: domain.StopRest, ETA: depart.Add(5 * time.Hour), DurationMin: 600},
		{Type: domain.StopPickup, ETA: depart.Add(time.Hour), DurationMin: 60},
	})
	trip.CreatedAt = createdAt
	return trip
}

// exerciseTripRepository runs the behavior every TripRepository adapter shares.
func exerciseTripRepository(t *testing.T, repo ports.TripRepository) {
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	older := sampleTrip("older", base)
	newer := sampleTrip("newer", base.Add(time.Hour))
	require.NoError(t, repo.SaveTrip(ctx, older))
	require.NoError(t, repo.SaveTrip(ctx, newer))

	got, err := repo.GetTrip(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older, got)
	require.Len(t, got.Stops, 2)
	assert.Equal(t, domain.StopRest, got.Stops[0].Type, "stops keep input order")

	older.Name = "older, edited"
	older.Stops = older.Stops[1:]
	require.NoError(t, repo.SaveTrip(ctx, older))

	got, err = repo.GetTrip(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "older, edited", got.Name)
	assert.Len(t, got.Stops, 1)

	_, err = repo.GetTrip(ctx, uuid.New())
	assert.True(t, errors.Is(err, ports.ErrTripNotFound))

	assert.Error(t, repo.SaveTrip(ctx, &domain.Trip{}))

	trips, err := repo.ListTrips(ctx)
	require.NoError(t, err)
	ids := make([]uuid.UUID, 0, len(trips))
	for _, tr := range trips {
		ids = append(ids, tr.ID)
	}
	newerAt, olderAt := indexOf(ids, newer.ID), indexOf(ids, older.ID)
	require.NotEqual(t, -1, newerAt)
	require.NotEqual(t, -1, olderAt)
	assert.Less(t, newerAt, olderAt, "newest first")

	// Sub-second creation times with differing fraction lengths.
	at100ms := sampleTrip("at 100ms", base.Add(2*time.Hour+100*time.Millisecond))
	at150ms := sampleTrip("at 150ms", base.Add(2*time.Hour+150*time.Millisecond))
	require.NoError(t, repo.SaveTrip(ctx, at100ms))
	require.NoError(t, repo.SaveTrip(ctx, at150ms))

	trips, err = repo.ListTrips(ctx)
	require.NoError(t, err)
	ids = ids[:0]
	for _, tr := range trips {
		ids = append(ids, tr.ID)
	}
	laterAt, earlierAt := indexOf(ids, at150ms.ID), indexOf(ids, at100ms.ID)
	require.NotEqual(t, -1, laterAt)
	require.NotEqual(t, -1, earlierAt)
	assert.Less(t, laterAt, earlierAt, "newest first within a second")
	assert.Less(t, earlierAt, indexOf(ids, newer.ID), "sub-second trips are newer than the hour-old ones")
}

func TestFormatTimeSortsAsText(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(100 * time.Millisecond),
		base.Add(150 * time.Millisecond),
		base.Add(time.Second),
	}
	for i := 1; i < len(times); i++ {
		assert.Less(t, formatTime(times[i-1]), formatTime(times[i]))
	}

	got, err := parseTime(formatTime(times[2]))
	require.NoError(t, err)
	assert.Equal(t, times[2], got)
	assert.Equal(t, "", formatTime(time.Time{}))
}

func indexOf(ids []uuid.UUID, id uuid.UUID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func TestMemoryTripRepository(t *testing.T) {
	exerciseTripRepository(t, NewMemoryTripRepository())
}

func TestMemoryTripRepositoryCopiesTrips(t *testing.T) {
	trip := sampleTrip("copy", time.Now().UTC())
	repo := NewMemoryTripRepository(trip)

	trip.Stops[0].DurationMin = 1
	got, err := repo.GetTrip(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 600, got.Stops[0].DurationMin)
}

func TestSqliteTripRepository(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	// Running twice must be harmless.
	require.NoError(t, InitSchema(conn))

	exerciseTripRepository(t, NewSqliteTripRepository(conn))
}

func TestSQLTripRepositoryPostgres(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn.DB))
	exerciseTripRepository(t, NewSQLTripRepository(conn))
}

func TestInitSchemaNilDB(t *testing.T) {
	assert.Error(t, InitSchema(nil))
}
