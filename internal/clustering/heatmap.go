package clustering

import "github.com/nightowl-app/nightowl-backend-go/internal/models"

// Marker radius grows 25% per extra visit up to the preset's step cap.
const radiusGrowthPerVisit = 0.25

// Floor opacity so even a once-visited place stays visible on the map.
const minOpacity = 0.25

// HeatmapPoints converts clusters into renderable heatmap blobs styled by
// the preset. Intensity is each cluster's visit count normalized by the
// busiest cluster, so a lone cluster renders at full intensity. An empty
// input produces an empty slice; there is simply nothing to show.
func HeatmapPoints(clusters []models.DwellCluster, preset models.IntensityPreset) []models.HeatmapPoint {
	points := make([]models.HeatmapPoint, 0, len(clusters))
	if len(clusters) == 0 {
		return points
	}

	maxVisits := 0
	for _, c := range clusters {
		if c.VisitCount() > maxVisits {
			maxVisits = c.VisitCount()
		}
	}

	for _, c := range clusters {
		intensity := 1.0
		if maxVisits > 0 {
			intensity = float64(c.VisitCount()) / float64(maxVisits)
		}

		steps := c.VisitCount() - 1
		if steps > preset.RadiusSteps {
			steps = preset.RadiusSteps
		}

		opacity := minOpacity + intensity*preset.OpacityMultiplier
		if opacity > 1 {
			opacity = 1
		}

		points = append(points, models.HeatmapPoint{
			Latitude:  c.CenterLat,
			Longitude: c.CenterLon,
			Radius:    preset.BaseRenderRadius * (1 + radiusGrowthPerVisit*float64(steps)),
			Intensity: intensity,
			Opacity:   opacity,
			ColorBand: colorBand(intensity),
			Visits:    c.VisitCount(),
			Label:     c.DisplayName(),
		})
	}

	return points
}

func colorBand(intensity float64) string {
	switch {
	case intensity >= 2.0/3.0:
		return models.ColorBandHot
	case intensity >= 1.0/3.0:
		return models.ColorBandWarm
	default:
		return models.ColorBandCool
	}
}
