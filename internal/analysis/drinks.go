package analysis

import (
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

// YearlyDrinks totals drink counts per category for sessions starting in
// now's calendar year, evaluated in now's location.
func YearlyDrinks(sessions []models.NightSession, now time.Time) models.DrinkBreakdown {
	year := now.Year()
	loc := now.Location()

	counts := make(map[string]int, len(models.DrinkCategories))
	for _, c := range models.DrinkCategories {
		counts[c] = 0
	}

	total := 0
	for i := range sessions {
		s := &sessions[i]
		if s.StartTime.In(loc).Year() != year {
			continue
		}
		for cat, n := range s.DrinkCounts {
			counts[cat] += n
			total += n
		}
	}

	return models.DrinkBreakdown{
		Year:     year,
		Counts:   counts,
		Total:    total,
		Favorite: Favorite(counts),
	}
}

// Favorite returns the category with the highest count. Ties break by the
// fixed category priority order, and a year with nothing logged returns
// the FavoriteNone sentinel rather than an arbitrary category.
func Favorite(counts map[string]int) string {
	best := models.FavoriteNone
	bestCount := 0
	for _, cat := range models.DrinkCategories {
		if counts[cat] > bestCount {
			best = cat
			bestCount = counts[cat]
		}
	}
	return best
}
