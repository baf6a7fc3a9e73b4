package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightowl-app/nightowl-backend-go/internal/database"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/render"
	"github.com/nightowl-app/nightowl-backend-go/internal/repository"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
	"github.com/nightowl-app/nightowl-backend-go/internal/tracking"
)

const (
	testLat = 51.5074
	testLon = -0.1278
)

var testStart = time.Date(2025, 3, 7, 22, 0, 0, 0, time.UTC)

type services struct {
	sessions *SessionService
	stats    *StatsService
	heatmap  *HeatmapService
	render   *RenderService
}

func newServices(t *testing.T) services {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	repo := repository.NewSessionRepository(db)
	tracker := tracking.NewTracker(tracking.DefaultDwellRadiusMeters, tracking.DefaultMinDwellDuration)

	return services{
		sessions: NewSessionService(tracker, repo, nil),
		stats:    NewStatsService(repo),
		heatmap:  NewHeatmapService(repo, tracker, models.PresetMedium),
		render:   NewRenderService(repo, render.NewRenderer(render.DefaultOptions())),
	}
}

// fixAt places a fix the given meters east of the test origin.
func fixAt(meters float64, at time.Time) models.Fix {
	lat, lon := spatial.DestinationPoint(testLat, testLon, 90, meters)
	return models.Fix{Latitude: lat, Longitude: lon, Timestamp: at}
}

// runNight drives a full session through the service: a 21-minute stop,
// a walk away, two beers, then home.
func runNight(t *testing.T, svc services) *models.NightSession {
	t.Helper()

	_, err := svc.sessions.Start(testStart)
	require.NoError(t, err)

	var dwells int
	for _, f := range []models.Fix{
		fixAt(0, testStart),
		fixAt(10, testStart.Add(10*time.Minute)),
		fixAt(5, testStart.Add(21*time.Minute)),
		fixAt(200, testStart.Add(22*time.Minute)),
		fixAt(400, testStart.Add(30*time.Minute)),
	} {
		dwell, err := svc.sessions.Ingest(f)
		require.NoError(t, err)
		if dwell != nil {
			dwells++
		}
	}
	require.Equal(t, 1, dwells, "the 21-minute stop is the only dwell")

	require.NoError(t, svc.sessions.AddDrink(models.DrinkBeer))
	require.NoError(t, svc.sessions.AddDrink(models.DrinkBeer))
	require.NoError(t, svc.sessions.SetRating(4))

	done, err := svc.sessions.End(testStart.Add(90 * time.Minute))
	require.NoError(t, err)
	return done
}

func TestSessionLifecycle(t *testing.T) {
	svc := newServices(t)

	done := runNight(t, svc)
	assert.NotNil(t, done.EndTime)
	assert.Len(t, done.Route, 5)
	assert.Len(t, done.Dwells, 1)
	assert.Equal(t, 2, done.DrinkCounts[models.DrinkBeer])

	// Persisted and readable back.
	history, err := svc.sessions.History()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, done.ID, history[0].ID)
	assert.Equal(t, 4, history[0].Rating)

	// No active session remains.
	_, _, err = svc.sessions.Active(time.Now())
	assert.ErrorIs(t, err, tracking.ErrNoActiveSession)
}

func TestActiveMetrics(t *testing.T) {
	svc := newServices(t)

	_, err := svc.sessions.Start(testStart)
	require.NoError(t, err)

	_, err = svc.sessions.Ingest(fixAt(0, testStart))
	require.NoError(t, err)
	_, err = svc.sessions.Ingest(fixAt(500, testStart.Add(10*time.Minute)))
	require.NoError(t, err)
	require.NoError(t, svc.sessions.AddDrink(models.DrinkWine))

	session, metrics, err := svc.sessions.Active(testStart.Add(30 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, session.ID, metrics.SessionID)
	assert.True(t, metrics.Active)
	assert.InDelta(t, 500, metrics.TotalDistanceM, 1.0)
	assert.InDelta(t, (30 * time.Minute).Seconds(), metrics.DurationSeconds, 0.001)
	assert.Equal(t, 1, metrics.DrinkTotal)
}

func TestStatsOverHistory(t *testing.T) {
	svc := newServices(t)
	runNight(t, svc)

	now := testStart.Add(100 * time.Minute) // still the same evening

	streak, err := svc.stats.Streak(now)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.Days)

	drinks, err := svc.stats.YearlyDrinks(now)
	require.NoError(t, err)
	assert.Equal(t, 2025, drinks.Year)
	assert.Equal(t, 2, drinks.Counts[models.DrinkBeer])
	assert.Equal(t, models.DrinkBeer, drinks.Favorite)

	lifetime, err := svc.stats.Lifetime(now)
	require.NoError(t, err)
	assert.Equal(t, 1, lifetime.SessionCount)
	assert.Equal(t, "Friday", lifetime.BusiestWeekday)
	assert.Equal(t, 22, lifetime.PeakHour)

	records, err := svc.stats.Records(now)
	require.NoError(t, err)
	require.NotNil(t, records.BiggestNight)
	assert.InDelta(t, 2, records.BiggestNight.Value, 1e-9)
}

func TestHeatmapFromHistoryAndActive(t *testing.T) {
	svc := newServices(t)
	runNight(t, svc)

	resp, err := svc.heatmap.Heatmap("")
	require.NoError(t, err)
	assert.Equal(t, models.PresetMedium, resp.Preset)
	require.Equal(t, 1, resp.Count)
	require.NotNil(t, resp.MostVisited)
	assert.Equal(t, 1, resp.MostVisited.Visits)

	// A second night dwelling at the same spot while still active counts.
	start2 := testStart.Add(24 * time.Hour)
	_, err = svc.sessions.Start(start2)
	require.NoError(t, err)
	for _, f := range []models.Fix{
		fixAt(2, start2),
		fixAt(8, start2.Add(12*time.Minute)),
		fixAt(4, start2.Add(25*time.Minute)),
		fixAt(300, start2.Add(26*time.Minute)),
	} {
		_, err = svc.sessions.Ingest(f)
		require.NoError(t, err)
	}

	resp, err = svc.heatmap.Heatmap(models.PresetMedium)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Count, "same venue merges into one cluster")
	assert.Equal(t, 2, resp.MostVisited.Visits)

	_, err = svc.heatmap.Heatmap("ultra")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestTopPlaces(t *testing.T) {
	svc := newServices(t)
	runNight(t, svc)

	places, err := svc.heatmap.TopPlaces(0)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, 1, places[0].Visits)
	assert.Contains(t, places[0].Name, "unnamed location")
	assert.False(t, places[0].HotSpot)
}

func TestRoutePNG(t *testing.T) {
	svc := newServices(t)
	done := runNight(t, svc)

	data, err := svc.render.RoutePNG(done.ID, 240)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 240, img.Bounds().Dx())

	_, err = svc.render.RoutePNG("missing", 240)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestShareCard(t *testing.T) {
	svc := newServices(t)
	done := runNight(t, svc)

	// A plain blue photo as multipart background stand-in.
	photo := image.NewRGBA(image.Rect(0, 0, 320, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 320; x++ {
			photo.Set(x, y, color.RGBA{B: 200, A: 255})
		}
	}
	var bg bytes.Buffer
	require.NoError(t, png.Encode(&bg, photo))

	placement := render.Placement{
		PreviewWidth:  160,
		PreviewHeight: 100,
		OffsetX:       10,
		OffsetY:       10,
		Scale:         0.4,
		Opacity:       0.9,
	}
	data, err := svc.render.ShareCard(done.ID, &bg, placement, 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx(), "card keeps the photo's native size")
	assert.Equal(t, 200, img.Bounds().Dy())
}
