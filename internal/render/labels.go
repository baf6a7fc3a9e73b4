package render

import (
	"log"

	"git.sr.ht/~sbinet/gg"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

// Labels wrap at 40% of the canvas so one verbose venue name cannot span
// the whole image.
const labelMaxWidthFrac = 0.40

type labelRect struct {
	x, y, w, h float64
}

func (a labelRect) overlaps(b labelRect) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

// drawLabels renders a pill label under each named dwell marker. Labels are
// clamped inside the canvas horizontally, and a label that would cover an
// earlier one slides below it instead.
func (r *Renderer) drawLabels(dc *gg.Context, proj *spatial.Projector, dwells []models.DwellPoint, size int) {
	named := 0
	for _, d := range dwells {
		if d.PlaceName != "" {
			named++
		}
	}
	if named == 0 {
		return
	}

	fontSize := float64(size) * 0.022
	if fontSize < 11 {
		fontSize = 11
	}
	face, err := newFace(true, fontSize)
	if err != nil {
		// A render without labels beats no render at all
		log.Printf("[Renderer] skipping labels: %v", err)
		return
	}
	dc.SetFontFace(face)

	maxTextW := labelMaxWidthFrac*float64(size) - 2*labelPadX(fontSize)
	var placed []labelRect

	for _, d := range dwells {
		if d.PlaceName == "" {
			continue
		}
		x, y := proj.Project(d.Latitude, d.Longitude)
		placed = r.drawPill(dc, d.PlaceName, x, y, size, fontSize, maxTextW, placed)
	}
}

func (r *Renderer) drawPill(dc *gg.Context, text string, markerX, markerY float64, size int, fontSize, maxTextW float64, placed []labelRect) []labelRect {
	padX := labelPadX(fontSize)
	padY := fontSize * 0.45
	lineH := fontSize * 1.3

	lines := dc.WordWrap(text, maxTextW)
	if len(lines) == 0 {
		return placed
	}

	textW := 0.0
	for _, line := range lines {
		w, _ := dc.MeasureString(line)
		if w > textW {
			textW = w
		}
	}

	pillW := textW + 2*padX
	pillH := float64(len(lines))*lineH + 2*padY

	// Below the marker, horizontally centered, clamped to the canvas
	edge := fontSize * 0.5
	px := clamp(markerX-pillW/2, edge, float64(size)-pillW-edge)
	py := markerY + markerRadius(size) + fontSize*0.6

	rect := labelRect{x: px, y: py, w: pillW, h: pillH}
	for i := 0; i < len(placed); i++ {
		if rect.overlaps(placed[i]) {
			rect.y = placed[i].y + placed[i].h + fontSize*0.3
			i = -1 // moved, recheck everyone
		}
	}
	if bottom := float64(size) - pillH - edge; rect.y > bottom {
		rect.y = bottom
	}

	dc.SetColor(r.opts.PillFill)
	dc.DrawRoundedRectangle(rect.x, rect.y, rect.w, rect.h, pillH/2)
	dc.Fill()

	for i, line := range lines {
		cx := rect.x + rect.w/2
		cy := rect.y + padY + lineH*float64(i) + lineH/2

		// Offset-stamped outline keeps text readable over the gradient and
		// any photo background
		o := fontSize * 0.06
		if o < 1 {
			o = 1
		}
		dc.SetColor(r.opts.LabelOutline)
		for _, off := range [][2]float64{{-o, 0}, {o, 0}, {0, -o}, {0, o}, {-o, -o}, {-o, o}, {o, -o}, {o, o}} {
			dc.DrawStringAnchored(line, cx+off[0], cy+off[1], 0.5, 0.5)
		}
		dc.SetColor(r.opts.LabelFill)
		dc.DrawStringAnchored(line, cx, cy, 0.5, 0.5)
	}

	return append(placed, rect)
}

func labelPadX(fontSize float64) float64 {
	return fontSize * 0.7
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
