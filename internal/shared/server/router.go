package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-insights/internal/insights"
	"resume-insights/internal/scoring"
	"resume-insights/internal/services/health"
	"resume-insights/internal/shared/config"
	"resume-insights/internal/shared/metrics"
	"resume-insights/internal/shared/server/middleware"
	"resume-insights/internal/shared/server/respond"
	"resume-insights/internal/upload"
)

const submitRateLimitGroup = "SUBMIT"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	client, err := scoring.NewClient(cfg.ScoringEndpoint, cfg.ScoringTimeout)
	if err != nil {
		return nil, err
	}
	return newRouter(cfg, client), nil
}

func newRouter(cfg config.Config, analyzer insights.Analyzer) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: submitGroup,
			Rules: map[string]middleware.RateLimitRule{
				submitRateLimitGroup: {Rate: cfg.SubmitRatePerSec, Burst: cfg.SubmitBurst},
			},
		}),
	)

	validator := upload.Validator{MaxBytes: cfg.MaxUploadBytes, VerifyPDF: cfg.VerifyPDF}
	// Multipart parts beyond this spill to temp files.
	r.MaxMultipartMemory = validator.Limit()

	healthSvc := health.NewService()
	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	r.GET("/metrics", metrics.Handler())

	insightsHandler := insights.NewHandler(analyzer, validator)
	insightsHandler.RegisterRoutes(r, r.Group("/api/v1"))

	return r
}

// submitGroup rate limits only the analyze submissions.
func submitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		return submitRateLimitGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
