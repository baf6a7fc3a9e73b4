package models

import "time"

// Fix represents a single GPS fix recorded during a session
type Fix struct {
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty" db:"accuracy"` // Meters, 0 = unknown
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
