package service

import (
	"fmt"
	"io"
	"time"

	"github.com/nightowl-app/nightowl-backend-go/internal/report"
	"github.com/nightowl-app/nightowl-backend-go/internal/repository"
)

// ReportService renders the year-in-review page.
type ReportService struct {
	repo *repository.SessionRepository
}

// NewReportService creates a new report service.
func NewReportService(repo *repository.SessionRepository) *ReportService {
	return &ReportService{repo: repo}
}

// YearInReview writes the report HTML for now's calendar year.
func (s *ReportService) YearInReview(w io.Writer, now time.Time) error {
	sessions, err := s.repo.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	return report.Build(w, sessions, now)
}
