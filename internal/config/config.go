package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
	"github.com/nightowl-app/nightowl-backend-go/internal/tracking"
)

// Config holds all runtime settings. Everything is read from the
// environment once at startup; a .env file in the working directory is
// honored but never overrides variables already set.
type Config struct {
	Port              string
	DBPath            string
	JWTSecret         string
	PremiumUnlockCode string

	DwellRadiusM     float64
	DwellMinDuration time.Duration

	HeatmapPreset string
	RenderSize    int

	GeocoderBaseURL   string
	GeocoderUserAgent string
	GeocoderDisabled  bool
}

// Load reads configuration from the environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", ":8080"),
		DBPath:            getEnv("DB_PATH", "./data/nightowl.db"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		PremiumUnlockCode: getEnv("PREMIUM_UNLOCK_CODE", ""),

		DwellRadiusM: getEnvFloat("DWELL_RADIUS_M", tracking.DefaultDwellRadiusMeters),
		DwellMinDuration: time.Duration(getEnvInt("DWELL_MIN_DURATION_S",
			int(tracking.DefaultMinDwellDuration.Seconds()))) * time.Second,

		HeatmapPreset: getEnv("HEATMAP_PRESET", models.PresetMedium),
		RenderSize:    getEnvInt("RENDER_SIZE", 0),

		GeocoderBaseURL:   getEnv("GEOCODER_BASE_URL", ""),
		GeocoderUserAgent: getEnv("GEOCODER_USER_AGENT", ""),
		GeocoderDisabled:  getEnvBool("GEOCODER_DISABLED", false),
	}

	if !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}
	if _, ok := models.PresetByName(cfg.HeatmapPreset); !ok {
		log.Printf("[Config] unknown HEATMAP_PRESET %q, using %s", cfg.HeatmapPreset, models.PresetMedium)
		cfg.HeatmapPreset = models.PresetMedium
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}
