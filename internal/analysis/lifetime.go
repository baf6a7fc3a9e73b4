package analysis

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

// Lifetime aggregates the whole history. Averages over an empty history are
// zero, never an error. The average dwell duration skips dwells that fail
// the validity rules (negative spans, longer than twelve hours, or ending
// more than a day in the future) in both numerator and denominator.
func Lifetime(sessions []models.NightSession, now time.Time) models.LifetimeStats {
	st := models.LifetimeStats{SessionCount: len(sessions)}

	weekday, weekdayCount := BusiestWeekday(sessions)
	st.BusiestWeekday = weekday.String()
	st.BusiestWeekdayCount = weekdayCount
	st.PeakHour, st.PeakHourCount = PeakHour(sessions)

	if len(sessions) == 0 {
		return st
	}

	distances := make([]float64, len(sessions))
	durations := make([]float64, len(sessions))
	dwellCounts := make([]float64, len(sessions))
	var dwellDurations []float64

	for i := range sessions {
		s := &sessions[i]
		distances[i] = spatial.PathLength(routePoints(s.Route))
		durations[i] = s.Duration(now).Seconds()
		dwellCounts[i] = float64(len(s.Dwells))

		st.TotalDwells += len(s.Dwells)
		st.TotalDrinks += s.DrinkTotal()

		for _, d := range s.Dwells {
			if d.Valid(now) {
				dwellDurations = append(dwellDurations, d.Duration().Seconds())
			}
		}
	}

	st.TotalDistanceM = floats.Sum(distances)
	st.TotalDurationSecs = floats.Sum(durations)
	st.AvgDistanceM = stat.Mean(distances, nil)
	st.AvgDurationSecs = stat.Mean(durations, nil)
	st.AvgDwellsPerSession = stat.Mean(dwellCounts, nil)
	if len(dwellDurations) > 0 {
		st.AvgDwellDurationSecs = stat.Mean(dwellDurations, nil)
	}

	return st
}

// WeekdayCounts returns sessions-started-per-weekday, Sunday first.
func WeekdayCounts(sessions []models.NightSession) [7]int {
	var counts [7]int
	for i := range sessions {
		counts[sessions[i].StartTime.Weekday()]++
	}
	return counts
}

// HourCounts returns sessions-started-per-hour of day.
func HourCounts(sessions []models.NightSession) [24]int {
	var counts [24]int
	for i := range sessions {
		counts[sessions[i].StartTime.Hour()]++
	}
	return counts
}

// BusiestWeekday returns the weekday on which the most sessions started.
// Ties go to the earliest weekday in Sunday-to-Saturday order; an empty
// history reports Sunday with a zero count.
func BusiestWeekday(sessions []models.NightSession) (time.Weekday, int) {
	counts := WeekdayCounts(sessions)

	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return time.Weekday(best), counts[best]
}

// PeakHour returns the start-time hour (0-23) with the most sessions. Ties
// go to the earliest hour; an empty history reports hour 0 with count 0.
func PeakHour(sessions []models.NightSession) (int, int) {
	counts := HourCounts(sessions)

	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best, counts[best]
}
