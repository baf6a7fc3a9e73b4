package handler

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightowl-app/nightowl-backend-go/internal/service"
	"github.com/nightowl-app/nightowl-backend-go/pkg/response"
)

// ReportHandler handles the year-in-review page
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetYearInReview handles GET /api/v1/report/year
func (h *ReportHandler) GetYearInReview(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.YearInReview(&buf, time.Now()); err != nil {
		response.InternalError(c, "failed to render report")
		return
	}
	c.Data(200, "text/html; charset=utf-8", buf.Bytes())
}
