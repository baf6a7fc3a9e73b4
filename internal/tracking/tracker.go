package tracking

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

var (
	// ErrNoActiveSession is returned when an operation needs a running session.
	ErrNoActiveSession = errors.New("no active session")
	// ErrSessionActive is returned when starting while a session is running.
	ErrSessionActive = errors.New("a session is already active")
)

// Tracker owns the currently active session. All mutation goes through it,
// and readers only ever receive deep copies, so a snapshot taken mid-session
// never changes under the caller.
type Tracker struct {
	mu          sync.Mutex
	radiusM     float64
	minDuration time.Duration

	active   *models.NightSession
	detector *Detector
}

// NewTracker creates a tracker with the given dwell detector tuning.
func NewTracker(radiusM float64, minDuration time.Duration) *Tracker {
	return &Tracker{
		radiusM:     radiusM,
		minDuration: minDuration,
	}
}

// Start begins a new session at the given time. Only one session can run
// at a time.
func (t *Tracker) Start(now time.Time) (*models.NightSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return nil, ErrSessionActive
	}

	t.active = models.NewNightSession(now)
	t.detector = NewDetector(t.radiusM, t.minDuration)
	return t.active.Clone(), nil
}

// Ingest records one GPS fix on the active session. A rejected fix returns
// the validation error without touching the session; the caller reports it
// and keeps going. When the fix completes a dwell, the dwell is appended to
// the session and returned.
func (t *Tracker) Ingest(fix models.Fix) (*models.DwellPoint, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return nil, ErrNoActiveSession
	}

	dwell, err := t.detector.Feed(fix)
	if err != nil {
		return nil, err
	}

	t.active.Route = append(t.active.Route, fix)
	if dwell != nil {
		t.active.Dwells = append(t.active.Dwells, *dwell)
	}
	return dwell, nil
}

// AddDrink increments the active session's count for a category.
func (t *Tracker) AddDrink(category string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return ErrNoActiveSession
	}
	if !models.IsDrinkCategory(category) {
		return fmt.Errorf("unknown drink category %q", category)
	}

	t.active.DrinkCounts[category]++
	return nil
}

// SetRating sets the 1-5 rating on the active session.
func (t *Tracker) SetRating(rating int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return ErrNoActiveSession
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating %d out of range 1-5", rating)
	}

	t.active.Rating = rating
	return nil
}

// Snapshot returns a deep copy of the active session.
func (t *Tracker) Snapshot() (*models.NightSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return nil, ErrNoActiveSession
	}
	return t.active.Clone(), nil
}

// End finishes the active session: the detector's open window gets its
// final evaluation, the end time is stamped, and the finalized session is
// returned. The tracker is ready for a new Start afterwards.
func (t *Tracker) End(now time.Time) (*models.NightSession, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return nil, ErrNoActiveSession
	}

	if dwell := t.detector.Flush(); dwell != nil {
		t.active.Dwells = append(t.active.Dwells, *dwell)
	}

	end := now
	t.active.EndTime = &end

	done := t.active
	t.active = nil
	t.detector = nil
	return done, nil
}
