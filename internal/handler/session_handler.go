package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/service"
	"github.com/nightowl-app/nightowl-backend-go/internal/tracking"
	"github.com/nightowl-app/nightowl-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for night sessions
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// StartSession handles POST /api/v1/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	session, err := h.service.Start(time.Now())
	if err != nil {
		if errors.Is(err, tracking.ErrSessionActive) {
			response.Conflict(c, "a session is already active")
			return
		}
		response.InternalError(c, "failed to start session")
		return
	}
	response.Success(c, session)
}

// GetActiveSession handles GET /api/v1/sessions/active
func (h *SessionHandler) GetActiveSession(c *gin.Context) {
	session, metrics, err := h.service.Active(time.Now())
	if err != nil {
		response.NotFound(c, "no active session")
		return
	}
	response.Success(c, gin.H{
		"session": session,
		"metrics": metrics,
	})
}

// IngestFix handles POST /api/v1/sessions/active/fixes. A rejected fix is
// a 400; the session stays alive and the client just sends the next one.
func (h *SessionHandler) IngestFix(c *gin.Context) {
	var req models.FixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid fix payload: "+err.Error())
		return
	}

	ts, err := time.Parse(time.RFC3339Nano, req.Timestamp)
	if err != nil {
		response.BadRequest(c, "invalid timestamp: "+err.Error())
		return
	}

	dwell, err := h.service.Ingest(models.Fix{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Accuracy:  req.Accuracy,
		Timestamp: ts,
	})
	switch {
	case errors.Is(err, tracking.ErrNoActiveSession):
		response.NotFound(c, "no active session")
	case errors.Is(err, tracking.ErrMalformedInput):
		response.BadRequest(c, err.Error())
	case err != nil:
		response.InternalError(c, "failed to record fix")
	default:
		response.Success(c, gin.H{"dwell": dwell})
	}
}

// AddDrink handles POST /api/v1/sessions/active/drinks
func (h *SessionHandler) AddDrink(c *gin.Context) {
	var req models.DrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid drink payload: "+err.Error())
		return
	}

	if err := h.service.AddDrink(req.Category); err != nil {
		if errors.Is(err, tracking.ErrNoActiveSession) {
			response.NotFound(c, "no active session")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"category": req.Category})
}

// SetRating handles PUT /api/v1/sessions/active/rating
func (h *SessionHandler) SetRating(c *gin.Context) {
	var req models.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid rating payload: "+err.Error())
		return
	}

	if err := h.service.SetRating(req.Rating); err != nil {
		if errors.Is(err, tracking.ErrNoActiveSession) {
			response.NotFound(c, "no active session")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, gin.H{"rating": req.Rating})
}

// EndSession handles POST /api/v1/sessions/active/end
func (h *SessionHandler) EndSession(c *gin.Context) {
	session, err := h.service.End(time.Now())
	if err != nil {
		if errors.Is(err, tracking.ErrNoActiveSession) {
			response.NotFound(c, "no active session")
			return
		}
		response.InternalError(c, "failed to finalize session")
		return
	}
	response.Success(c, session)
}

// GetSessions handles GET /api/v1/sessions
func (h *SessionHandler) GetSessions(c *gin.Context) {
	sessions, err := h.service.History()
	if err != nil {
		response.InternalError(c, "failed to load sessions")
		return
	}
	response.Success(c, gin.H{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// GetSessionByID handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSessionByID(c *gin.Context) {
	session, err := h.service.Session(c.Param("id"))
	if err != nil {
		response.InternalError(c, "failed to load session")
		return
	}
	if session == nil {
		response.NotFound(c, "session not found")
		return
	}
	response.Success(c, session)
}

// ClearSessions handles DELETE /api/v1/sessions
func (h *SessionHandler) ClearSessions(c *gin.Context) {
	if err := h.service.ClearHistory(); err != nil {
		response.InternalError(c, "failed to clear history")
		return
	}
	response.Success(c, nil)
}
