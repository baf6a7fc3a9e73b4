package models

// Color band constants for heatmap rendering hints
const (
	ColorBandCool = "cool"
	ColorBandWarm = "warm"
	ColorBandHot  = "hot"
)

// Intensity preset names
const (
	PresetLow    = "low"
	PresetMedium = "medium"
	PresetHigh   = "high"
)

// IntensityPreset tunes how dwell clusters are derived and styled. Changing
// preset changes which dwells merge, so heatmap points are always recomputed
// from raw dwells rather than persisted.
type IntensityPreset struct {
	Name              string  `json:"name"`
	ClusterRadiusM    float64 `json:"clusterRadiusM"`    // Merge radius for dwells
	BaseRenderRadius  float64 `json:"baseRenderRadius"`  // Pixels at one visit
	RadiusSteps       int     `json:"radiusSteps"`       // Growth steps capped at this many extra visits
	OpacityMultiplier float64 `json:"opacityMultiplier"` // Scales intensity into opacity
}

var intensityPresets = map[string]IntensityPreset{
	PresetLow:    {Name: PresetLow, ClusterRadiusM: 150, BaseRenderRadius: 18, RadiusSteps: 3, OpacityMultiplier: 0.50},
	PresetMedium: {Name: PresetMedium, ClusterRadiusM: 100, BaseRenderRadius: 24, RadiusSteps: 4, OpacityMultiplier: 0.65},
	PresetHigh:   {Name: PresetHigh, ClusterRadiusM: 60, BaseRenderRadius: 30, RadiusSteps: 5, OpacityMultiplier: 0.80},
}

// PresetByName looks up an intensity preset, reporting whether it exists.
func PresetByName(name string) (IntensityPreset, bool) {
	p, ok := intensityPresets[name]
	return p, ok
}

// DefaultPreset returns the medium intensity preset.
func DefaultPreset() IntensityPreset {
	return intensityPresets[PresetMedium]
}

// HeatmapPoint represents one renderable blob on the frequent-places map
type HeatmapPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`    // Pixels
	Intensity float64 `json:"intensity"` // Normalized 0-1
	Opacity   float64 `json:"opacity"`   // 0-1
	ColorBand string  `json:"colorBand"` // cool, warm, hot
	Visits    int     `json:"visits"`    // Raw member count
	Label     string  `json:"label"`     // Cluster display name
}

// HeatmapResponse represents the heatmap API response
type HeatmapResponse struct {
	Points      []HeatmapPoint `json:"points"`
	Count       int            `json:"count"`
	Preset      string         `json:"preset"`
	HotSpots    int            `json:"hotSpots"`
	MostVisited *HeatmapPoint  `json:"mostVisited,omitempty"`
}
