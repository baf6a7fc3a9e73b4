package handler

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightowl-app/nightowl-backend-go/internal/middleware"
	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/pkg/response"
)

// PremiumHandler handles premium activation
type PremiumHandler struct {
	unlockCode string
	jwtSecret  string
}

// NewPremiumHandler creates a new premium handler
func NewPremiumHandler(unlockCode, jwtSecret string) *PremiumHandler {
	return &PremiumHandler{
		unlockCode: unlockCode,
		jwtSecret:  jwtSecret,
	}
}

// Activate handles POST /api/v1/premium/activate. A matching unlock code
// yields a bearer token for the premium routes.
func (h *PremiumHandler) Activate(c *gin.Context) {
	var req models.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid activation payload")
		return
	}

	if h.unlockCode == "" ||
		subtle.ConstantTimeCompare([]byte(req.Code), []byte(h.unlockCode)) != 1 {
		response.Unauthorized(c, "invalid unlock code")
		return
	}

	token, err := middleware.IssuePremiumToken(h.jwtSecret, time.Now())
	if err != nil {
		response.InternalError(c, "failed to issue token")
		return
	}
	response.Success(c, gin.H{
		"token":     token,
		"expiresIn": int((365 * 24 * time.Hour).Seconds()),
	})
}
