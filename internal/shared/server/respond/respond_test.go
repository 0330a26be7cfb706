package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/fail", func(c *gin.Context) {
		Error(c, http.StatusBadGateway, "upstream_error", "scoring service unavailable", nil)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "upstream_error" || body.Error.Message != "scoring service unavailable" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestHTMLErrorKeepsBodyForCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/analyze", func(c *gin.Context) {
		HTMLError(c, http.StatusBadRequest, "validation_error", "file is empty")
		HTML(c, http.StatusBadRequest, []byte("<p>File is empty</p>"))
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != contentTypeHTML {
		t.Fatalf("unexpected content type %q", ct)
	}
	if resp.Body.String() != "<p>File is empty</p>" {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}
