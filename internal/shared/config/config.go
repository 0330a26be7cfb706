package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-insights/internal/shared/telemetry"
)

const (
	defaultScoringEndpoint = "http://localhost:5000"
	defaultMaxUploadBytes  = 16 << 20
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	ScoringEndpoint  string
	ScoringTimeout   time.Duration
	MaxUploadBytes   int64
	VerifyPDF        bool
	SubmitRatePerSec float64
	SubmitBurst      int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	endpoint := strings.TrimSpace(os.Getenv("SCORING_ENDPOINT"))
	if endpoint == "" {
		if env == "production" {
			telemetry.Error("config.missing", map[string]any{"key": "SCORING_ENDPOINT"})
		}
		endpoint = defaultScoringEndpoint
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ScoringEndpoint:  endpoint,
		ScoringTimeout:   getDuration("SCORING_TIMEOUT", 0),
		MaxUploadBytes:   getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		VerifyPDF:        getBool("VERIFY_PDF", true),
		SubmitRatePerSec: getFloat("SUBMIT_RATE_PER_SEC", 1),
		SubmitBurst:      int(getInt64("SUBMIT_BURST", 5)),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return parsed
}

// getDuration accepts Go durations ("90s") or bare seconds ("90").
func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return def
		}
		return time.Duration(secs) * time.Second
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
