package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/analysis"
	"github.com/nightowl-app/nightowl-backend-go/internal/geocode"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/repository"
	"github.com/nightowl-app/nightowl-backend-go/internal/tracking"
)

// SessionService coordinates the live tracker with persisted history.
type SessionService struct {
	tracker *tracking.Tracker
	repo    *repository.SessionRepository
	namer   *geocode.Namer
}

// NewSessionService creates a new session service.
func NewSessionService(tracker *tracking.Tracker, repo *repository.SessionRepository, namer *geocode.Namer) *SessionService {
	return &SessionService{
		tracker: tracker,
		repo:    repo,
		namer:   namer,
	}
}

// Start begins a new night session.
func (s *SessionService) Start(now time.Time) (*models.NightSession, error) {
	session, err := s.tracker.Start(now)
	if err != nil {
		return nil, err
	}
	log.Printf("[Session] started %s", session.ID)
	return session, nil
}

// Active returns a snapshot of the running session with live metrics.
func (s *SessionService) Active(now time.Time) (*models.NightSession, *models.SessionMetrics, error) {
	session, err := s.tracker.Snapshot()
	if err != nil {
		return nil, nil, err
	}
	metrics := analysis.Metrics(session, now)
	return session, &metrics, nil
}

// Ingest records one GPS fix. A rejected fix returns the validation error;
// the session keeps running. When the fix completes a dwell, the dwell is
// returned.
func (s *SessionService) Ingest(fix models.Fix) (*models.DwellPoint, error) {
	return s.tracker.Ingest(fix)
}

// AddDrink logs one drink of the given category on the active session.
func (s *SessionService) AddDrink(category string) error {
	return s.tracker.AddDrink(category)
}

// SetRating sets the 1-5 rating on the active session.
func (s *SessionService) SetRating(rating int) error {
	return s.tracker.SetRating(rating)
}

// End finalizes the active session, persists it, and kicks off place-name
// resolution for its dwells in the background.
func (s *SessionService) End(now time.Time) (*models.NightSession, error) {
	session, err := s.tracker.End(now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(session); err != nil {
		return nil, fmt.Errorf("failed to persist session %s: %w", session.ID, err)
	}
	log.Printf("[Session] ended %s: %d fixes, %d dwells", session.ID, len(session.Route), len(session.Dwells))

	if s.namer != nil && len(session.Dwells) > 0 {
		go s.namer.NameDwells(context.Background(), session.Dwells)
	}

	return session, nil
}

// History returns all finished sessions ordered by start time.
func (s *SessionService) History() ([]models.NightSession, error) {
	return s.repo.LoadAll()
}

// Session returns one finished session, or nil if the ID is unknown.
func (s *SessionService) Session(id string) (*models.NightSession, error) {
	return s.repo.Load(id)
}

// ClearHistory wipes all persisted sessions.
func (s *SessionService) ClearHistory() error {
	if err := s.repo.DeleteAll(); err != nil {
		return err
	}
	log.Printf("[Session] history cleared")
	return nil
}
