package service

import (
	"fmt"
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/analysis"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/repository"
)

// StatsService computes aggregates over the finished session history.
// Everything is recomputed from raw sessions on each call; the history of
// a single person never gets big enough to make that worth caching.
type StatsService struct {
	repo *repository.SessionRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(repo *repository.SessionRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Lifetime returns totals and averages over the whole history.
func (s *StatsService) Lifetime(now time.Time) (*models.LifetimeStats, error) {
	sessions, err := s.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	stats := analysis.Lifetime(sessions, now)
	return &stats, nil
}

// Records returns the personal bests across the history.
func (s *StatsService) Records(now time.Time) (*models.SessionRecords, error) {
	sessions, err := s.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	records := analysis.Records(sessions, now)
	return &records, nil
}

// Streak returns the current consecutive-day going-out streak.
func (s *StatsService) Streak(now time.Time) (*models.StreakResult, error) {
	sessions, err := s.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	return &models.StreakResult{Days: analysis.CurrentStreak(sessions, now)}, nil
}

// YearlyDrinks returns per-category drink totals for the current year.
func (s *StatsService) YearlyDrinks(now time.Time) (*models.DrinkBreakdown, error) {
	sessions, err := s.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	breakdown := analysis.YearlyDrinks(sessions, now)
	return &breakdown, nil
}
