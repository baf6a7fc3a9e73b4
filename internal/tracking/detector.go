package tracking

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/spatial"
)

// Default detector tuning. 25 meters holds a bar plus its smoking area in
// one window; 20 minutes separates an actual stop from waiting at a crossing.
const (
	DefaultDwellRadiusMeters = 25.0
	DefaultMinDwellDuration  = 20 * time.Minute
)

// ErrMalformedInput marks fixes that were rejected outright. Callers drop
// the fix and keep the session running.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError reports why a fix was rejected.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

// Detector turns a stream of GPS fixes into dwell points. It keeps a
// candidate window anchored at the first fix of a potential stop; a fix
// joins the window while it stays within the radius of that original
// anchor. Comparing against the anchor rather than a rolling centroid keeps
// slow drift through a crowded street from being mistaken for a stop, at
// the cost of splitting a genuine stop whose anchor landed at its edge.
//
// Each session gets its own Detector; it is not safe for concurrent use.
type Detector struct {
	radiusM     float64
	minDuration time.Duration

	window  []models.Fix // window[0] is the anchor
	last    time.Time    // timestamp of the last accepted fix
	hasLast bool
}

// NewDetector creates a detector. Non-positive or non-finite tuning values
// fall back to the defaults rather than producing a degenerate detector.
func NewDetector(radiusM float64, minDuration time.Duration) *Detector {
	if radiusM <= 0 || math.IsNaN(radiusM) || math.IsInf(radiusM, 0) {
		radiusM = DefaultDwellRadiusMeters
	}
	if minDuration <= 0 {
		minDuration = DefaultMinDwellDuration
	}
	return &Detector{
		radiusM:     radiusM,
		minDuration: minDuration,
	}
}

// Feed processes one fix. It returns a completed dwell when this fix broke
// a window that had lasted long enough, at most one per call. A rejected
// fix returns a MalformedInputError and leaves the detector unchanged.
func (d *Detector) Feed(fix models.Fix) (*models.DwellPoint, error) {
	if err := validateFix(fix); err != nil {
		return nil, err
	}
	if d.hasLast && fix.Timestamp.Before(d.last) {
		return nil, &MalformedInputError{Reason: fmt.Sprintf(
			"fix timestamp %s precedes previous fix %s",
			fix.Timestamp.Format(time.RFC3339Nano), d.last.Format(time.RFC3339Nano))}
	}
	d.last = fix.Timestamp
	d.hasLast = true

	if len(d.window) == 0 {
		d.window = append(d.window, fix)
		return nil, nil
	}

	anchor := d.window[0]
	if spatial.HaversineDistance(anchor.Latitude, anchor.Longitude, fix.Latitude, fix.Longitude) <= d.radiusM {
		d.window = append(d.window, fix)
		return nil, nil
	}

	// Window broken: emit if it lasted long enough, then re-anchor on the
	// breaking fix so a new stop can start here immediately.
	dwell := d.closeWindow()
	d.window = d.window[:0]
	d.window = append(d.window, fix)
	return dwell, nil
}

// Flush evaluates the open window once more at session end. A window that
// satisfies the duration threshold is emitted; anything shorter is
// discarded. The detector is empty afterwards.
func (d *Detector) Flush() *models.DwellPoint {
	dwell := d.closeWindow()
	d.window = nil
	return dwell
}

// closeWindow turns the current window into a dwell if it spans at least
// the minimum duration. A single fix spans zero time and never qualifies.
func (d *Detector) closeWindow() *models.DwellPoint {
	if len(d.window) < 2 {
		return nil
	}
	first := d.window[0]
	last := d.window[len(d.window)-1]
	if last.Timestamp.Sub(first.Timestamp) < d.minDuration {
		return nil
	}

	pts := make([]spatial.Point, len(d.window))
	for i, f := range d.window {
		pts[i] = spatial.Point{Lat: f.Latitude, Lon: f.Longitude}
	}
	center := spatial.Centroid(pts)

	return &models.DwellPoint{
		ID:        uuid.NewString(),
		Latitude:  center.Lat,
		Longitude: center.Lon,
		StartTime: first.Timestamp,
		EndTime:   last.Timestamp,
	}
}

func validateFix(fix models.Fix) error {
	if !finite(fix.Latitude) || !finite(fix.Longitude) || !finite(fix.Accuracy) {
		return &MalformedInputError{Reason: "non-finite coordinate"}
	}
	if fix.Latitude < -90 || fix.Latitude > 90 {
		return &MalformedInputError{Reason: fmt.Sprintf("latitude %f out of range", fix.Latitude)}
	}
	if fix.Longitude < -180 || fix.Longitude > 180 {
		return &MalformedInputError{Reason: fmt.Sprintf("longitude %f out of range", fix.Longitude)}
	}
	if fix.Timestamp.IsZero() {
		return &MalformedInputError{Reason: "missing timestamp"}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
