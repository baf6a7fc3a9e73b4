package analysis

import (
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

// Record units
const (
	UnitSeconds = "seconds"
	UnitMeters  = "meters"
	UnitStops   = "stops"
	UnitDrinks  = "drinks"
)

// Records scans the history for personal bests. A later session must
// strictly beat the standing value to take a record, so ties keep the
// first session that set them. An empty history leaves every entry nil.
func Records(sessions []models.NightSession, now time.Time) models.SessionRecords {
	var recs models.SessionRecords
	for i := range sessions {
		s := &sessions[i]
		recs.LongestNight = better(recs.LongestNight, s, s.Duration(now).Seconds(), UnitSeconds)
		recs.FurthestNight = better(recs.FurthestNight, s, spatial.PathLength(routePoints(s.Route)), UnitMeters)
		recs.MostStops = better(recs.MostStops, s, float64(len(s.Dwells)), UnitStops)
		recs.BiggestNight = better(recs.BiggestNight, s, float64(s.DrinkTotal()), UnitDrinks)
	}
	return recs
}

func better(cur *models.RecordEntry, s *models.NightSession, value float64, unit string) *models.RecordEntry {
	if cur != nil && value <= cur.Value {
		return cur
	}
	return &models.RecordEntry{
		SessionID: s.ID,
		StartTime: s.StartTime,
		Value:     value,
		Unit:      unit,
	}
}
