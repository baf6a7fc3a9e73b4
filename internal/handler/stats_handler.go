package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightowl-app/nightowl-backend-go/internal/service"
	"github.com/nightowl-app/nightowl-backend-go/pkg/response"
)

// StatsHandler handles HTTP requests for statistics
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service *service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetLifetime handles GET /api/v1/stats/lifetime
func (h *StatsHandler) GetLifetime(c *gin.Context) {
	stats, err := h.service.Lifetime(time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute lifetime stats")
		return
	}
	response.Success(c, stats)
}

// GetRecords handles GET /api/v1/stats/records
func (h *StatsHandler) GetRecords(c *gin.Context) {
	records, err := h.service.Records(time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute records")
		return
	}
	response.Success(c, records)
}

// GetStreak handles GET /api/v1/stats/streak
func (h *StatsHandler) GetStreak(c *gin.Context) {
	streak, err := h.service.Streak(time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute streak")
		return
	}
	response.Success(c, streak)
}

// GetYearlyDrinks handles GET /api/v1/stats/drinks/year
func (h *StatsHandler) GetYearlyDrinks(c *gin.Context) {
	breakdown, err := h.service.YearlyDrinks(time.Now())
	if err != nil {
		response.InternalError(c, "failed to compute drink totals")
		return
	}
	response.Success(c, breakdown)
}
