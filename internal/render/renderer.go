// Package render draws a session's route and dwells onto a transparent
// raster canvas, and composites the result onto user photos. Rendering is
// deterministic for fixed inputs: same session, same size, same pixels.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"git.sr.ht/~sbinet/gg"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

// ErrInsufficientData is returned when there is nothing worth drawing.
// Callers surface it as "nothing to show", not as a failure.
var ErrInsufficientData = errors.New("insufficient data to render")

// Options tunes the renderer. Zero values fall back to defaults.
type Options struct {
	Size    int     // Square canvas edge in pixels
	Padding float64 // Fraction of the canvas kept clear around the route

	GradientStart color.Color // Route stroke near the session start
	GradientEnd   color.Color // Route stroke near the session end
	StartMarker   color.Color
	EndMarker     color.Color
	DwellMarker   color.Color
	MarkerRing    color.Color
	LabelFill     color.Color
	LabelOutline  color.Color
	PillFill      color.Color

	// SimplifyEpsilonM thins the route before stroking; dense one-fix-per-
	// second tracks draw identically with a fraction of the segments.
	SimplifyEpsilonM float64
}

// DefaultOptions returns the night palette on a 1080px canvas.
func DefaultOptions() Options {
	return Options{
		Size:             1080,
		Padding:          0.10,
		GradientStart:    color.RGBA{R: 0x4F, G: 0xC3, B: 0xF7, A: 0xFF}, // electric blue
		GradientEnd:      color.RGBA{R: 0xE0, G: 0x40, B: 0xFB, A: 0xFF}, // neon magenta
		StartMarker:      color.RGBA{R: 0x34, G: 0xC7, B: 0x59, A: 0xFF},
		EndMarker:        color.RGBA{R: 0xFF, G: 0x3B, B: 0x30, A: 0xFF},
		DwellMarker:      color.RGBA{R: 0xFF, G: 0xB3, B: 0x00, A: 0xFF},
		MarkerRing:       color.White,
		LabelFill:        color.White,
		LabelOutline:     color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF},
		PillFill:         color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0x99},
		SimplifyEpsilonM: 2.0,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Size <= 0 {
		o.Size = d.Size
	}
	if o.Padding <= 0 || o.Padding >= 0.5 {
		o.Padding = d.Padding
	}
	if o.GradientStart == nil {
		o.GradientStart = d.GradientStart
	}
	if o.GradientEnd == nil {
		o.GradientEnd = d.GradientEnd
	}
	if o.StartMarker == nil {
		o.StartMarker = d.StartMarker
	}
	if o.EndMarker == nil {
		o.EndMarker = d.EndMarker
	}
	if o.DwellMarker == nil {
		o.DwellMarker = d.DwellMarker
	}
	if o.MarkerRing == nil {
		o.MarkerRing = d.MarkerRing
	}
	if o.LabelFill == nil {
		o.LabelFill = d.LabelFill
	}
	if o.LabelOutline == nil {
		o.LabelOutline = d.LabelOutline
	}
	if o.PillFill == nil {
		o.PillFill = d.PillFill
	}
	if o.SimplifyEpsilonM <= 0 {
		o.SimplifyEpsilonM = d.SimplifyEpsilonM
	}
	return o
}

// Renderer draws route overlays. Construct one per configuration; renders
// are read-only over their inputs and safe to run concurrently.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer, filling unset options with defaults.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts.withDefaults()}
}

// RenderRoute draws the session onto a transparent square canvas of the
// given size (0 uses the configured default). Fewer than two route points
// cannot make a path and return ErrInsufficientData.
func (r *Renderer) RenderRoute(s *models.NightSession, size int) (*image.RGBA, error) {
	if len(s.Route) < 2 {
		return nil, fmt.Errorf("%w: route has %d points, need 2", ErrInsufficientData, len(s.Route))
	}
	if size <= 0 {
		size = r.opts.Size
	}

	routePts := make([]spatial.Point, len(s.Route))
	for i, f := range s.Route {
		routePts[i] = spatial.Point{Lat: f.Latitude, Lon: f.Longitude}
	}

	bounds, err := spatial.BoundingBox(routePts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute route bounds: %w", err)
	}
	proj := spatial.NewProjector(bounds, size, size, r.opts.Padding)

	drawn := spatial.SimplifyPath(routePts, r.opts.SimplifyEpsilonM)

	dc := gg.NewContext(size, size)

	r.strokeRoute(dc, proj, drawn)
	r.drawMarkers(dc, proj, s, size)
	r.drawLabels(dc, proj, s.Dwells, size)

	img := dc.Image()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	return rgba, nil
}

// strokeRoute strokes the polyline with rounded caps and joins, filling the
// stroke region with a linear gradient that runs from the first projected
// point to the last. Filling the stroked outline with a pattern is what
// keeps the gradient running along the path instead of flattening to one
// color.
func (r *Renderer) strokeRoute(dc *gg.Context, proj *spatial.Projector, pts []spatial.Point) {
	x0, y0 := proj.Project(pts[0].Lat, pts[0].Lon)
	xn, yn := proj.Project(pts[len(pts)-1].Lat, pts[len(pts)-1].Lon)

	dc.MoveTo(x0, y0)
	for _, p := range pts[1:] {
		x, y := proj.Project(p.Lat, p.Lon)
		dc.LineTo(x, y)
	}

	grad := gg.NewLinearGradient(x0, y0, xn, yn)
	grad.AddColorStop(0, r.opts.GradientStart)
	grad.AddColorStop(1, r.opts.GradientEnd)

	dc.SetLineWidth(lineWidth(dc.Width()))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetStrokeStyle(grad)
	dc.Stroke()
}

func (r *Renderer) drawMarkers(dc *gg.Context, proj *spatial.Projector, s *models.NightSession, size int) {
	radius := markerRadius(size)

	for _, d := range s.Dwells {
		x, y := proj.Project(d.Latitude, d.Longitude)
		r.drawMarker(dc, x, y, radius*0.9, r.opts.DwellMarker)
	}

	first := s.Route[0]
	last := s.Route[len(s.Route)-1]
	sx, sy := proj.Project(first.Latitude, first.Longitude)
	ex, ey := proj.Project(last.Latitude, last.Longitude)
	r.drawMarker(dc, sx, sy, radius, r.opts.StartMarker)
	r.drawMarker(dc, ex, ey, radius, r.opts.EndMarker)
}

// drawMarker draws a filled dot with a contrasting outline ring so markers
// stay readable over arbitrary photo backgrounds.
func (r *Renderer) drawMarker(dc *gg.Context, x, y, radius float64, fill color.Color) {
	dc.SetColor(r.opts.MarkerRing)
	dc.DrawCircle(x, y, radius+ringWidth(radius))
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawCircle(x, y, radius)
	dc.Fill()
}

func lineWidth(size int) float64 {
	w := float64(size) * 0.008
	if w < 3 {
		w = 3
	}
	return w
}

func markerRadius(size int) float64 {
	radius := float64(size) * 0.012
	if radius < 5 {
		radius = 5
	}
	return radius
}

func ringWidth(markerR float64) float64 {
	w := markerR * 0.25
	if w < 2 {
		w = 2
	}
	return w
}
