package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Placement describes where the user positioned the overlay on the share
// preview. The preview shows the background photo at PreviewWidth by
// PreviewHeight; OffsetX/OffsetY is the overlay's top-left corner and Scale
// its edge length as a fraction of the preview width, all in preview
// coordinates. Opacity outside (0, 1] falls back to fully opaque.
type Placement struct {
	PreviewWidth  float64
	PreviewHeight float64
	OffsetX       float64
	OffsetY       float64
	Scale         float64
	Opacity       float64
}

// Composite draws the overlay onto the background photo at native
// resolution. Preview coordinates are re-projected with independent X and Y
// factors (nativeWidth/previewWidth and nativeHeight/previewHeight); using
// a single factor would slide the overlay away from where the user dragged
// it whenever the preview and the photo are scaled differently per axis.
func Composite(background image.Image, overlay image.Image, p Placement) (*image.RGBA, error) {
	if p.PreviewWidth <= 0 || p.PreviewHeight <= 0 {
		return nil, fmt.Errorf("invalid preview size %gx%g", p.PreviewWidth, p.PreviewHeight)
	}

	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	opacity := p.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}

	bb := background.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	draw.Draw(out, out.Bounds(), background, bb.Min, draw.Src)

	fx := float64(bb.Dx()) / p.PreviewWidth
	fy := float64(bb.Dy()) / p.PreviewHeight

	side := scale * p.PreviewWidth
	nw := int(math.Round(side * fx))
	nh := int(math.Round(side * fy))
	if nw < 1 || nh < 1 {
		return nil, fmt.Errorf("overlay scaled to %dx%d pixels", nw, nh)
	}

	nx := int(math.Round(p.OffsetX * fx))
	ny := int(math.Round(p.OffsetY * fy))

	scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), overlay, overlay.Bounds(), xdraw.Over, nil)

	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	target := image.Rect(nx, ny, nx+nw, ny+nh)
	draw.DrawMask(out, target, scaled, image.Point{}, mask, image.Point{}, draw.Over)

	return out, nil
}
