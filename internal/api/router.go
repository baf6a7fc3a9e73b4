package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nightowl-app/nightowl-backend-go/internal/config"
	"github.com/nightowl-app/nightowl-backend-go/internal/handler"
	"github.com/nightowl-app/nightowl-backend-go/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Sessions *handler.SessionHandler
	Stats    *handler.StatsHandler
	Heatmap  *handler.HeatmapHandler
	Render   *handler.RenderHandler
	Premium  *handler.PremiumHandler
	Report   *handler.ReportHandler
}

// SetupRouter builds the HTTP surface.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "NightOwl API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.Sessions.StartSession)
			sessions.GET("", h.Sessions.GetSessions)
			sessions.DELETE("", h.Sessions.ClearSessions)

			sessions.GET("/active", h.Sessions.GetActiveSession)
			// Fix ingestion is the only route a client hits in a loop.
			sessions.POST("/active/fixes", middleware.RateLimit(120, time.Minute), h.Sessions.IngestFix)
			sessions.POST("/active/drinks", h.Sessions.AddDrink)
			sessions.PUT("/active/rating", h.Sessions.SetRating)
			sessions.POST("/active/end", h.Sessions.EndSession)

			sessions.GET("/:id", h.Sessions.GetSessionByID)
			sessions.GET("/:id/route.png", h.Render.GetRoutePNG)
			sessions.POST("/:id/share-card", h.Render.CreateShareCard)
		}

		api.GET("/heatmap", h.Heatmap.GetHeatmap)
		api.GET("/places/top", h.Heatmap.GetTopPlaces)

		api.GET("/stats/streak", h.Stats.GetStreak)
		api.GET("/stats/drinks/year", h.Stats.GetYearlyDrinks)

		api.POST("/premium/activate", h.Premium.Activate)

		premium := api.Group("", middleware.Entitlement(cfg.JWTSecret))
		{
			premium.GET("/stats/lifetime", h.Stats.GetLifetime)
			premium.GET("/stats/records", h.Stats.GetRecords)
			premium.GET("/report/year", h.Report.GetYearInReview)
		}
	}

	return r
}
