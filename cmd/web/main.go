package main

import (
	"log"

	"resume-insights/internal/shared/config"
	"resume-insights/internal/shared/server"
	"resume-insights/internal/shared/telemetry"
)

func main() {
	defer telemetry.Sync()

	cfg := config.Load()
	r, err := server.NewRouter(cfg)
	if err != nil {
		log.Fatalf("router setup: %v", err)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{
		"addr":             addr,
		"env":              cfg.Env,
		"scoring_endpoint": cfg.ScoringEndpoint,
	})

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
