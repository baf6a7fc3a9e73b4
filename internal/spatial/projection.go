package spatial

// Projector maps geographic coordinates onto a raster canvas using linear
// interpolation across a bounding box. North maps to the top of the canvas,
// so the y axis is flipped relative to latitude.
type Projector struct {
	bounds  Bounds
	width   float64
	height  float64
	padding float64 // Fraction of each dimension kept clear on every side
}

// NewProjector creates a projector for the given box and canvas size.
// padding is a fraction (0.10 insets the content by 10% on each side).
func NewProjector(bounds Bounds, width, height int, padding float64) *Projector {
	return &Projector{
		bounds:  bounds,
		width:   float64(width),
		height:  float64(height),
		padding: padding,
	}
}

// Project converts a lat/lon pair to canvas pixel coordinates. Degenerate
// extents (a single point, or a perfectly straight north-south or east-west
// track) collapse that axis to the canvas center instead of dividing by zero.
func (p *Projector) Project(lat, lon float64) (float64, float64) {
	padX := p.padding * p.width
	padY := p.padding * p.height
	innerW := p.width - 2*padX
	innerH := p.height - 2*padY

	x := p.width / 2
	if span := p.bounds.LonSpan(); span > 0 {
		x = padX + (lon-p.bounds.MinLon)/span*innerW
	}

	y := p.height / 2
	if span := p.bounds.LatSpan(); span > 0 {
		y = padY + (p.bounds.MaxLat-lat)/span*innerH
	}

	return x, y
}
