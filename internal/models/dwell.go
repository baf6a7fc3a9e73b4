package models

import "time"

// MaxDwellDuration is the longest span a dwell can cover and still count
// toward averages. Anything longer is treated as a tracking artifact
// (phone left at home, detector wedged open overnight).
const MaxDwellDuration = 12 * time.Hour

// MaxDwellFutureDrift is how far past "now" a dwell may end before it is
// considered clock skew and excluded from aggregate statistics.
const MaxDwellFutureDrift = 24 * time.Hour

// DwellPoint represents a detected stop: the user lingered inside a small
// radius for at least the configured minimum duration.
type DwellPoint struct {
	ID        string    `json:"id" db:"id"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	StartTime time.Time `json:"startTime" db:"start_time"`
	EndTime   time.Time `json:"endTime" db:"end_time"`
	PlaceName string    `json:"placeName,omitempty" db:"place_name"` // Empty until geocoded
}

// Duration returns the dwell's span.
func (d DwellPoint) Duration() time.Duration {
	return d.EndTime.Sub(d.StartTime)
}

// Valid reports whether the dwell should participate in aggregate
// statistics: positive duration, no longer than MaxDwellDuration, and not
// ending further than MaxDwellFutureDrift past now.
func (d DwellPoint) Valid(now time.Time) bool {
	if !d.StartTime.Before(d.EndTime) {
		return false
	}
	dur := d.Duration()
	if dur <= 0 || dur > MaxDwellDuration {
		return false
	}
	if d.EndTime.After(now.Add(MaxDwellFutureDrift)) {
		return false
	}
	return true
}
