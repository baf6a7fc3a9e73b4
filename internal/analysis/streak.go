package analysis

import (
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

const dayKey = "2006-01-02"

// CurrentStreak counts consecutive calendar days with at least one session
// start, walking backward from today in now's location. A day with nothing
// stops the walk, so a streak that did not continue today reads as zero.
func CurrentStreak(sessions []models.NightSession, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	loc := now.Location()
	days := make(map[string]bool, len(sessions))
	for i := range sessions {
		days[sessions[i].StartTime.In(loc).Format(dayKey)] = true
	}

	streak := 0
	for day := now; days[day.Format(dayKey)]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
