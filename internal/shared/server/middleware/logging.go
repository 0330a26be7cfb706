package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-insights/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log.
const (
	StageKey       = "stage"
	FailureKey     = "failureReason"
	UploadHashKey  = "uploadHash"
	UploadBytesKey = "uploadBytes"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
			"stage":       c.GetString(StageKey),
		}
		if reason := c.GetString(FailureKey); reason != "" {
			fields["failure_reason"] = reason
		}
		if hash := c.GetString(UploadHashKey); hash != "" {
			fields["upload_hash"] = hash
			fields["upload_bytes"] = c.GetInt(UploadBytesKey)
		}
		telemetry.Info("request.complete", fields)
	}
}
