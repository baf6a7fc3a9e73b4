package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	_ "image/jpeg" // background photo decoders

	"github.com/nightowl-app/nightowl-backend-go/internal/render"
	"github.com/nightowl-app/nightowl-backend-go/internal/repository"
)

// ErrSessionNotFound is returned when a render target does not exist.
var ErrSessionNotFound = errors.New("session not found")

// RenderService turns finished sessions into shareable images.
type RenderService struct {
	repo     *repository.SessionRepository
	renderer *render.Renderer
}

// NewRenderService creates a new render service.
func NewRenderService(repo *repository.SessionRepository, renderer *render.Renderer) *RenderService {
	return &RenderService{repo: repo, renderer: renderer}
}

// RoutePNG renders the session's route as an encoded PNG. size <= 0 uses
// the renderer default.
func (s *RenderService) RoutePNG(sessionID string, size int) ([]byte, error) {
	session, err := s.repo.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	img, err := s.renderer.RenderRoute(session, size)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// ShareCard renders the session's route and composites it onto a photo
// background at the placement the user chose in the preview.
func (s *RenderService) ShareCard(sessionID string, background io.Reader, placement render.Placement, size int) ([]byte, error) {
	session, err := s.repo.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	routeImg, err := s.renderer.RenderRoute(session, size)
	if err != nil {
		return nil, err
	}

	photo, _, err := image.Decode(background)
	if err != nil {
		return nil, fmt.Errorf("failed to decode background photo: %w", err)
	}

	card, err := render.Composite(photo, routeImg, placement)
	if err != nil {
		return nil, err
	}
	return encodePNG(card)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
