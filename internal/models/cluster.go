package models

import (
	"fmt"
	"time"
)

// HotSpotMinVisits is the member count at which a cluster counts as a
// regular haunt rather than a one-off stop.
const HotSpotMinVisits = 3

// DwellCluster groups dwells that happened at the same real-world place.
// Clusters are derived on demand and never persisted.
type DwellCluster struct {
	CenterLat float64      `json:"centerLat"`
	CenterLon float64      `json:"centerLon"`
	Members   []DwellPoint `json:"members"`
}

// VisitCount returns the number of dwells in the cluster.
func (c DwellCluster) VisitCount() int {
	return len(c.Members)
}

// TotalDuration sums the members' spans.
func (c DwellCluster) TotalDuration() time.Duration {
	var total time.Duration
	for _, m := range c.Members {
		total += m.Duration()
	}
	return total
}

// IsHotSpot reports whether the cluster has enough visits to count as a
// frequent haunt.
func (c DwellCluster) IsHotSpot() bool {
	return c.VisitCount() >= HotSpotMinVisits
}

// PlaceSummary is the API shape for a ranked frequent place.
type PlaceSummary struct {
	Name              string  `json:"name"`
	Visits            int     `json:"visits"`
	CenterLat         float64 `json:"centerLat"`
	CenterLon         float64 `json:"centerLon"`
	TotalDurationSecs float64 `json:"totalDurationSeconds"`
	HotSpot           bool    `json:"hotSpot"`
}

// Summary flattens the cluster into its API shape.
func (c DwellCluster) Summary() PlaceSummary {
	return PlaceSummary{
		Name:              c.DisplayName(),
		Visits:            c.VisitCount(),
		CenterLat:         c.CenterLat,
		CenterLon:         c.CenterLon,
		TotalDurationSecs: c.TotalDuration().Seconds(),
		HotSpot:           c.IsHotSpot(),
	}
}

// DisplayName returns the most frequent non-empty member place name. Ties
// go to the name that reached the winning count first. A cluster with no
// named members falls back to "unnamed location (N visits)".
func (c DwellCluster) DisplayName() string {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for _, m := range c.Members {
		if m.PlaceName == "" {
			continue
		}
		counts[m.PlaceName]++
		if counts[m.PlaceName] > bestCount {
			best = m.PlaceName
			bestCount = counts[m.PlaceName]
		}
	}
	if best == "" {
		return fmt.Sprintf("unnamed location (%d visits)", c.VisitCount())
	}
	return best
}
