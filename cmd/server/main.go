package main

import (
	"log"

	"github.com/nightowl-app/nightowl-backend-go/internal/api"
	"github.com/nightowl-app/nightowl-backend-go/internal/config"
	"github.com/nightowl-app/nightowl-backend-go/internal/database"
	"github.com/nightowl-app/nightowl-backend-go/internal/geocode"
	"github.com/nightowl-app/nightowl-backend-go/internal/handler"
	"github.com/nightowl-app/nightowl-backend-go/internal/render"
	"github.com/nightowl-app/nightowl-backend-go/internal/repository"
	"github.com/nightowl-app/nightowl-backend-go/internal/service"
	"github.com/nightowl-app/nightowl-backend-go/internal/tracking"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	repo := repository.NewSessionRepository(db)
	tracker := tracking.NewTracker(cfg.DwellRadiusM, cfg.DwellMinDuration)
	namer := geocode.NewNamer(
		geocode.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderUserAgent),
		repo,
		cfg.GeocoderDisabled,
	)

	sessionService := service.NewSessionService(tracker, repo, namer)
	statsService := service.NewStatsService(repo)
	heatmapService := service.NewHeatmapService(repo, tracker, cfg.HeatmapPreset)

	opts := render.DefaultOptions()
	if cfg.RenderSize > 0 {
		opts.Size = cfg.RenderSize
	}
	renderService := service.NewRenderService(repo, render.NewRenderer(opts))
	reportService := service.NewReportService(repo)

	router := api.SetupRouter(cfg, api.Handlers{
		Sessions: handler.NewSessionHandler(sessionService),
		Stats:    handler.NewStatsHandler(statsService),
		Heatmap:  handler.NewHeatmapHandler(heatmapService),
		Render:   handler.NewRenderHandler(renderService),
		Premium:  handler.NewPremiumHandler(cfg.PremiumUnlockCode, cfg.JWTSecret),
		Report:   handler.NewReportHandler(reportService),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
