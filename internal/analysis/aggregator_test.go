package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

var anBase = time.Date(2025, 3, 7, 22, 0, 0, 0, time.UTC) // a Friday

// sessionWith builds a finished session from route offsets (meters east of
// a fixed origin) and dwell durations.
func sessionWith(start time.Time, routeMeters []float64, dwellDurations []time.Duration) models.NightSession {
	s := models.NewNightSession(start)
	for i, m := range routeMeters {
		lat, lon := spatial.DestinationPoint(48.8566, 2.3522, 90, m)
		s.Route = append(s.Route, models.Fix{Latitude: lat, Longitude: lon, Timestamp: start.Add(time.Duration(i) * time.Minute)})
	}
	cursor := start
	for _, d := range dwellDurations {
		s.Dwells = append(s.Dwells, models.DwellPoint{
			ID:        "d",
			Latitude:  48.8566,
			Longitude: 2.3522,
			StartTime: cursor,
			EndTime:   cursor.Add(d),
		})
		cursor = cursor.Add(d)
	}
	end := start.Add(4 * time.Hour)
	s.EndTime = &end
	return *s
}

func TestMetrics(t *testing.T) {
	s := sessionWith(anBase, []float64{0, 500, 1200}, []time.Duration{30 * time.Minute})
	s.DrinkCounts[models.DrinkBeer] = 2

	m := Metrics(&s, anBase.Add(24*time.Hour))

	assert.Equal(t, s.ID, m.SessionID)
	assert.InDelta(t, 1200, m.TotalDistanceM, 1.0)
	assert.InDelta(t, (4 * time.Hour).Seconds(), m.DurationSeconds, 1e-9)
	assert.Equal(t, 1, m.DwellCount)
	assert.Equal(t, 2, m.DrinkTotal)
	assert.False(t, m.Active)
}

func TestMetricsActiveSessionMeasuresUpToNow(t *testing.T) {
	s := models.NewNightSession(anBase)
	now := anBase.Add(90 * time.Minute)

	m := Metrics(s, now)

	assert.True(t, m.Active)
	assert.InDelta(t, (90 * time.Minute).Seconds(), m.DurationSeconds, 1e-9)
	assert.Zero(t, m.TotalDistanceM)
}

func TestMetricsDistanceNeedsTwoFixes(t *testing.T) {
	s := models.NewNightSession(anBase)
	s.Route = append(s.Route, models.Fix{Latitude: 48.8566, Longitude: 2.3522, Timestamp: anBase})

	m := Metrics(s, anBase.Add(time.Hour))
	assert.Zero(t, m.TotalDistanceM)
}
