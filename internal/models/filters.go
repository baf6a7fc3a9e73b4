package models

// HeatmapQuery represents query parameters for the heatmap endpoint
type HeatmapQuery struct {
	Preset string `form:"preset"` // low, medium, high
}

// RenderQuery represents query parameters for route rendering
type RenderQuery struct {
	Size int `form:"size"` // Square canvas edge in pixels
}

// FixRequest represents one incoming GPS fix. Zero is a legal coordinate,
// so latitude and longitude carry no required binding; range checks happen
// in the dwell detector.
type FixRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp string  `json:"timestamp" binding:"required"` // RFC 3339, sub-second precision kept
}

// DrinkRequest represents a logged drink
type DrinkRequest struct {
	Category string `json:"category" binding:"required"`
}

// RatingRequest represents the end-of-night rating
type RatingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// ActivateRequest represents a premium unlock attempt
type ActivateRequest struct {
	Code string `json:"code" binding:"required"`
}

// PlacementRequest represents where the user positioned the route overlay
// on the share-card preview. Multipart form fields alongside the photo.
type PlacementRequest struct {
	PreviewWidth  float64 `form:"previewWidth" binding:"required"`
	PreviewHeight float64 `form:"previewHeight" binding:"required"`
	OffsetX       float64 `form:"offsetX"`
	OffsetY       float64 `form:"offsetY"`
	Scale         float64 `form:"scale"`
	Opacity       float64 `form:"opacity"`
}
