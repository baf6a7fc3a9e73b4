// Package analysis computes per-session metrics and lifetime statistics.
// Everything here is a pure function over session values: callers pass the
// history and a clock, results are recomputed on demand and never cached.
package analysis

import (
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

// Metrics computes the headline numbers for one session. An active session
// measures its duration up to now; distance over fewer than two fixes is 0.
func Metrics(s *models.NightSession, now time.Time) models.SessionMetrics {
	return models.SessionMetrics{
		SessionID:       s.ID,
		TotalDistanceM:  spatial.PathLength(routePoints(s.Route)),
		DurationSeconds: s.Duration(now).Seconds(),
		DwellCount:      len(s.Dwells),
		DrinkTotal:      s.DrinkTotal(),
		Active:          s.IsActive(),
	}
}

func routePoints(route []models.Fix) []spatial.Point {
	pts := make([]spatial.Point, len(route))
	for i, f := range route {
		pts[i] = spatial.Point{Lat: f.Latitude, Lon: f.Longitude}
	}
	return pts
}
