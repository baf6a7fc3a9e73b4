package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/nightowl-app/nightowl-backend-go/internal/clustering"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/repository"
	"github.com/nightowl-app/nightowl-backend-go/internal/tracking"
)

// ErrUnknownPreset is returned for preset names outside low/medium/high.
var ErrUnknownPreset = errors.New("unknown heatmap preset")

// HeatmapService builds the frequent-places heatmap from dwell history.
// Dwells from the active session count too, so tonight's stops show up
// while the night is still going.
type HeatmapService struct {
	repo          *repository.SessionRepository
	tracker       *tracking.Tracker
	defaultPreset string
}

// NewHeatmapService creates a new heatmap service.
func NewHeatmapService(repo *repository.SessionRepository, tracker *tracking.Tracker, defaultPreset string) *HeatmapService {
	if _, ok := models.PresetByName(defaultPreset); !ok {
		defaultPreset = models.PresetMedium
	}
	return &HeatmapService{
		repo:          repo,
		tracker:       tracker,
		defaultPreset: defaultPreset,
	}
}

// Heatmap clusters all recorded dwells under the named preset and returns
// renderable points. An empty preset name uses the configured default.
func (s *HeatmapService) Heatmap(presetName string) (*models.HeatmapResponse, error) {
	if presetName == "" {
		presetName = s.defaultPreset
	}
	preset, ok := models.PresetByName(presetName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, presetName)
	}

	dwells, err := s.allDwells()
	if err != nil {
		return nil, err
	}

	clusters := clustering.Cluster(dwells, preset.ClusterRadiusM)
	points := clustering.HeatmapPoints(clusters, preset)

	resp := &models.HeatmapResponse{
		Points:   points,
		Count:    len(points),
		Preset:   preset.Name,
		HotSpots: len(clustering.HotSpots(clusters)),
	}

	if mv, err := clustering.MostVisited(clusters); err == nil {
		// HeatmapPoints preserves cluster order, so the matching point
		// shares the winning cluster's index.
		for i := range clusters {
			if &clusters[i] == mv {
				resp.MostVisited = &points[i]
				break
			}
		}
	}

	return resp, nil
}

// TopPlaces returns the most visited places, best first. Ties keep the
// order the places were first encountered in.
func (s *HeatmapService) TopPlaces(limit int) ([]models.PlaceSummary, error) {
	if limit <= 0 {
		limit = 5
	}

	dwells, err := s.allDwells()
	if err != nil {
		return nil, err
	}

	clusters := clustering.Cluster(dwells, models.DefaultPreset().ClusterRadiusM)
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].VisitCount() > clusters[j].VisitCount()
	})

	if len(clusters) > limit {
		clusters = clusters[:limit]
	}

	places := make([]models.PlaceSummary, 0, len(clusters))
	for _, c := range clusters {
		places = append(places, c.Summary())
	}
	return places, nil
}

// allDwells merges dwells from finished sessions with the active
// session's, when one is running.
func (s *HeatmapService) allDwells() ([]models.DwellPoint, error) {
	sessions, err := s.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	var dwells []models.DwellPoint
	for _, session := range sessions {
		dwells = append(dwells, session.Dwells...)
	}

	if s.tracker != nil {
		if snapshot, err := s.tracker.Snapshot(); err == nil {
			dwells = append(dwells, snapshot.Dwells...)
		}
	}

	return dwells, nil
}
