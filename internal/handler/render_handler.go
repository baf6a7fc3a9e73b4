package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/render"
	"github.com/nightowl-app/nightowl-backend-go/internal/service"
	"github.com/nightowl-app/nightowl-backend-go/pkg/response"
)

// RenderHandler handles HTTP requests for route images and share cards
type RenderHandler struct {
	service *service.RenderService
}

// NewRenderHandler creates a new render handler
func NewRenderHandler(service *service.RenderService) *RenderHandler {
	return &RenderHandler{service: service}
}

// GetRoutePNG handles GET /api/v1/sessions/:id/route.png
func (h *RenderHandler) GetRoutePNG(c *gin.Context) {
	var query models.RenderQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	data, err := h.service.RoutePNG(c.Param("id"), query.Size)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(200, "image/png", data)
}

// CreateShareCard handles POST /api/v1/sessions/:id/share-card. The body is
// multipart: a "photo" file plus the placement fields from the preview.
func (h *RenderHandler) CreateShareCard(c *gin.Context) {
	var req models.PlacementRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid placement fields: "+err.Error())
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "missing photo upload")
		return
	}
	photo, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "failed to read photo upload")
		return
	}
	defer photo.Close()

	placement := render.Placement{
		PreviewWidth:  req.PreviewWidth,
		PreviewHeight: req.PreviewHeight,
		OffsetX:       req.OffsetX,
		OffsetY:       req.OffsetY,
		Scale:         req.Scale,
		Opacity:       req.Opacity,
	}

	data, err := h.service.ShareCard(c.Param("id"), photo, placement, 0)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Data(200, "image/png", data)
}

func (h *RenderHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, "session not found")
	case errors.Is(err, render.ErrInsufficientData):
		response.UnprocessableEntity(c, "not enough route points to draw")
	default:
		response.InternalError(c, err.Error())
	}
}
