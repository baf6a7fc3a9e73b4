package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/service"
	"github.com/nightowl-app/nightowl-backend-go/pkg/response"
)

// HeatmapHandler handles HTTP requests for the frequent-places heatmap
type HeatmapHandler struct {
	service *service.HeatmapService
}

// NewHeatmapHandler creates a new heatmap handler
func NewHeatmapHandler(service *service.HeatmapService) *HeatmapHandler {
	return &HeatmapHandler{service: service}
}

// GetHeatmap handles GET /api/v1/heatmap
func (h *HeatmapHandler) GetHeatmap(c *gin.Context) {
	var query models.HeatmapQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	heatmap, err := h.service.Heatmap(query.Preset)
	if err != nil {
		if errors.Is(err, service.ErrUnknownPreset) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "failed to build heatmap")
		return
	}
	response.Success(c, heatmap)
}

// GetTopPlaces handles GET /api/v1/places/top
func (h *HeatmapHandler) GetTopPlaces(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil {
		response.BadRequest(c, "invalid limit parameter")
		return
	}

	places, err := h.service.TopPlaces(limit)
	if err != nil {
		response.InternalError(c, "failed to rank places")
		return
	}
	response.Success(c, gin.H{
		"places": places,
		"total":  len(places),
	})
}
