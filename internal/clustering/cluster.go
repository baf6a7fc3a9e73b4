// Package clustering groups detected dwells into places. Clusters are
// derived on demand from raw dwells so a preset change never needs a
// migration, just a recompute.
package clustering

import (
	"errors"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

// ErrNoDwells is returned when an operation needs at least one cluster.
var ErrNoDwells = errors.New("no dwells recorded")

// Cluster groups dwells in a single greedy pass: the first unassigned dwell
// seeds a cluster and absorbs every later unassigned dwell within radiusM
// of the seed itself. Membership is decided against the seed, not the
// growing centroid, so results depend only on input order and are cheap to
// recompute. Every input dwell lands in exactly one cluster. Quadratic in
// the number of dwells, which stays comfortable for years of nights out.
func Cluster(dwells []models.DwellPoint, radiusM float64) []models.DwellCluster {
	if len(dwells) == 0 {
		return nil
	}
	if radiusM <= 0 {
		radiusM = models.DefaultPreset().ClusterRadiusM
	}

	assigned := make([]bool, len(dwells))
	var clusters []models.DwellCluster

	for i := range dwells {
		if assigned[i] {
			continue
		}
		seed := dwells[i]
		members := []models.DwellPoint{seed}
		assigned[i] = true

		for j := i + 1; j < len(dwells); j++ {
			if assigned[j] {
				continue
			}
			d := spatial.HaversineDistance(seed.Latitude, seed.Longitude, dwells[j].Latitude, dwells[j].Longitude)
			if d <= radiusM {
				members = append(members, dwells[j])
				assigned[j] = true
			}
		}

		clusters = append(clusters, newCluster(members))
	}

	return clusters
}

// newCluster builds a cluster around the duration-weighted centroid of its
// members. Degenerate durations (all zero) fall back to the unweighted mean.
func newCluster(members []models.DwellPoint) models.DwellCluster {
	pts := make([]spatial.Point, len(members))
	weights := make([]float64, len(members))
	for i, m := range members {
		pts[i] = spatial.Point{Lat: m.Latitude, Lon: m.Longitude}
		w := m.Duration().Seconds()
		if w < 0 {
			w = 0
		}
		weights[i] = w
	}

	center := spatial.WeightedCentroid(pts, weights)
	return models.DwellCluster{
		CenterLat: center.Lat,
		CenterLon: center.Lon,
		Members:   members,
	}
}

// HotSpots returns the clusters visited often enough to count as haunts.
func HotSpots(clusters []models.DwellCluster) []models.DwellCluster {
	var hot []models.DwellCluster
	for _, c := range clusters {
		if c.IsHotSpot() {
			hot = append(hot, c)
		}
	}
	return hot
}

// MostVisited returns the cluster with the most members. Ties go to the
// cluster encountered first.
func MostVisited(clusters []models.DwellCluster) (*models.DwellCluster, error) {
	if len(clusters) == 0 {
		return nil, ErrNoDwells
	}

	best := 0
	for i := 1; i < len(clusters); i++ {
		if clusters[i].VisitCount() > clusters[best].VisitCount() {
			best = i
		}
	}
	return &clusters[best], nil
}
