package models

import (
	"time"

	"github.com/google/uuid"
)

// Drink category constants
const (
	DrinkBeer     = "beer"
	DrinkWine     = "wine"
	DrinkCocktail = "cocktail"
	DrinkShot     = "shot"
	DrinkSoft     = "soft"
)

// FavoriteNone is returned when no drinks have been logged at all.
const FavoriteNone = "none yet"

// DrinkCategories lists every valid category. The order doubles as the
// tie-break priority when two categories have equal counts.
var DrinkCategories = []string{DrinkBeer, DrinkWine, DrinkCocktail, DrinkShot, DrinkSoft}

// IsDrinkCategory reports whether s names a known drink category.
func IsDrinkCategory(s string) bool {
	for _, c := range DrinkCategories {
		if c == s {
			return true
		}
	}
	return false
}

// NightSession represents one evening out: the recorded route, detected
// dwells, logged drinks and an optional end-of-night rating.
type NightSession struct {
	ID          string         `json:"id" db:"id"`
	StartTime   time.Time      `json:"startTime" db:"start_time"`
	EndTime     *time.Time     `json:"endTime,omitempty" db:"end_time"` // nil while active
	Route       []Fix          `json:"route"`
	Dwells      []DwellPoint   `json:"dwells"`
	DrinkCounts map[string]int `json:"drinkCounts"`
	Rating      int            `json:"rating,omitempty" db:"rating"` // 0 = unrated, else 1-5
}

// NewNightSession creates an empty active session starting at the given time.
func NewNightSession(start time.Time) *NightSession {
	return &NightSession{
		ID:          uuid.NewString(),
		StartTime:   start,
		Route:       []Fix{},
		Dwells:      []DwellPoint{},
		DrinkCounts: map[string]int{},
	}
}

// IsActive reports whether the session is still running.
func (s *NightSession) IsActive() bool {
	return s.EndTime == nil
}

// Duration returns the session's span, measuring up to now while active.
func (s *NightSession) Duration(now time.Time) time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}

// DrinkTotal returns the number of drinks logged across all categories.
func (s *NightSession) DrinkTotal() int {
	total := 0
	for _, n := range s.DrinkCounts {
		total += n
	}
	return total
}

// Clone returns a deep copy. Handing copies to readers keeps the live
// session mutable without sharing slices or the counts map.
func (s *NightSession) Clone() *NightSession {
	c := *s
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	c.Route = make([]Fix, len(s.Route))
	copy(c.Route, s.Route)
	c.Dwells = make([]DwellPoint, len(s.Dwells))
	copy(c.Dwells, s.Dwells)
	c.DrinkCounts = make(map[string]int, len(s.DrinkCounts))
	for k, v := range s.DrinkCounts {
		c.DrinkCounts[k] = v
	}
	return &c
}
