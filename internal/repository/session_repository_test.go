package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightowl-app/nightowl-backend-go/internal/database"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

var timeComparer = cmp.Comparer(func(x, y time.Time) bool { return x.Equal(y) })

func newTestRepo(t *testing.T) *SessionRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return NewSessionRepository(db)
}

func finishedSession(t *testing.T, start time.Time) *models.NightSession {
	t.Helper()
	s := models.NewNightSession(start)
	s.Route = []models.Fix{
		{Latitude: 51.5074, Longitude: -0.1278, Accuracy: 8.5, Timestamp: start},
		{Latitude: 51.5080, Longitude: -0.1270, Accuracy: 12.0, Timestamp: start.Add(5 * time.Minute)},
		{Latitude: 51.5091, Longitude: -0.1255, Timestamp: start.Add(12 * time.Minute)},
	}
	s.Dwells = []models.DwellPoint{
		{
			ID:        "dwell-1",
			Latitude:  51.5080,
			Longitude: -0.1270,
			StartTime: start.Add(5 * time.Minute),
			EndTime:   start.Add(40 * time.Minute),
			PlaceName: "The Blue Posts",
		},
		{
			ID:        "dwell-2",
			Latitude:  51.5091,
			Longitude: -0.1255,
			StartTime: start.Add(50 * time.Minute),
			EndTime:   start.Add(80 * time.Minute),
		},
	}
	s.DrinkCounts[models.DrinkBeer] = 3
	s.DrinkCounts[models.DrinkCocktail] = 1
	s.Rating = 4
	end := start.Add(2 * time.Hour)
	s.EndTime = &end
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	// Sub-second precision must survive the round trip.
	start := time.Date(2025, 3, 7, 22, 0, 0, 123456789, time.UTC)
	s := finishedSession(t, start)
	require.NoError(t, repo.Save(s))

	loaded, err := repo.Load(s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	if diff := cmp.Diff(s, loaded, timeComparer); diff != "" {
		t.Errorf("session mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSaveRejectsActiveSession(t *testing.T) {
	repo := newTestRepo(t)
	s := models.NewNightSession(time.Now())
	assert.Error(t, repo.Save(s))
}

func TestLoadMissingSession(t *testing.T) {
	repo := newTestRepo(t)
	loaded, err := repo.Load("nope")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadAllOrdersByStartTime(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2025, 3, 1, 21, 0, 0, 0, time.UTC)
	later := finishedSession(t, base.Add(48*time.Hour))
	earlier := finishedSession(t, base)

	// Insert out of order.
	require.NoError(t, repo.Save(later))
	require.NoError(t, repo.Save(earlier))

	all, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, earlier.ID, all[0].ID)
	assert.Equal(t, later.ID, all[1].ID)

	// Details must land on the right session.
	assert.Len(t, all[0].Route, 3)
	assert.Len(t, all[1].Dwells, 2)
	assert.Equal(t, 3, all[0].DrinkCounts[models.DrinkBeer])
}

func TestLoadAllEmpty(t *testing.T) {
	repo := newTestRepo(t)
	all, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdateDwellPlaceName(t *testing.T) {
	repo := newTestRepo(t)
	s := finishedSession(t, time.Date(2025, 3, 7, 22, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(s))

	require.NoError(t, repo.UpdateDwellPlaceName("dwell-2", "Night Cafe"))

	loaded, err := repo.Load(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Night Cafe", loaded.Dwells[1].PlaceName)

	assert.Error(t, repo.UpdateDwellPlaceName("missing", "x"), "unknown dwell IDs are an error")
}

func TestDeleteAllCascades(t *testing.T) {
	repo := newTestRepo(t)
	s := finishedSession(t, time.Date(2025, 3, 7, 22, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(s))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.DeleteAll())

	count, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	all, err := repo.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// Dwell rows must be gone too, not orphaned.
	assert.Error(t, repo.UpdateDwellPlaceName("dwell-1", "x"))
}
