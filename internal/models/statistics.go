package models

import "time"

// SessionMetrics represents the headline numbers for a single session
type SessionMetrics struct {
	SessionID       string  `json:"sessionId"`
	TotalDistanceM  float64 `json:"totalDistanceM"`
	DurationSeconds float64 `json:"durationSeconds"`
	DwellCount      int     `json:"dwellCount"`
	DrinkTotal      int     `json:"drinkTotal"`
	Active          bool    `json:"active"`
}

// LifetimeStats represents aggregates over the whole session history
type LifetimeStats struct {
	SessionCount         int     `json:"sessionCount"`
	TotalDistanceM       float64 `json:"totalDistanceM"`
	TotalDurationSecs    float64 `json:"totalDurationSeconds"`
	TotalDwells          int     `json:"totalDwells"`
	TotalDrinks          int     `json:"totalDrinks"`
	AvgDistanceM         float64 `json:"avgDistanceM"`
	AvgDurationSecs      float64 `json:"avgDurationSeconds"`
	AvgDwellsPerSession  float64 `json:"avgDwellsPerSession"`
	AvgDwellDurationSecs float64 `json:"avgDwellDurationSeconds"` // Over valid dwells only
	BusiestWeekday       string  `json:"busiestWeekday"`
	BusiestWeekdayCount  int     `json:"busiestWeekdayCount"`
	PeakHour             int     `json:"peakHour"` // 0-23, start-time hour
	PeakHourCount        int     `json:"peakHourCount"`
}

// RecordEntry represents one personal best with the session that set it
type RecordEntry struct {
	SessionID string    `json:"sessionId"`
	StartTime time.Time `json:"startTime"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
}

// SessionRecords represents personal bests across the history. Entries are
// nil until at least one finished session exists.
type SessionRecords struct {
	LongestNight  *RecordEntry `json:"longestNight,omitempty"`  // Duration seconds
	FurthestNight *RecordEntry `json:"furthestNight,omitempty"` // Distance meters
	MostStops     *RecordEntry `json:"mostStops,omitempty"`     // Dwell count
	BiggestNight  *RecordEntry `json:"biggestNight,omitempty"`  // Drink total
}

// DrinkBreakdown represents per-category totals for a calendar year
type DrinkBreakdown struct {
	Year     int            `json:"year"`
	Counts   map[string]int `json:"counts"`
	Total    int            `json:"total"`
	Favorite string         `json:"favorite"` // FavoriteNone when nothing logged
}

// StreakResult represents the current consecutive-day going-out streak
type StreakResult struct {
	Days int `json:"days"`
}
