package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/BoulehmiHoussem/Logient/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	h, _, _, logPath := setupTestHandler()
	defer os.Remove(logPath)
	r := setupTestRouter(h)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRateLimitMiddleware(t *testing.T) {
	h, _, _, logPath := setupTestHandler()
	defer os.Remove(logPath)

	gin.SetMode(gin.TestMode)
	limiter := services.NewIPRateLimiter(1, 1, slog.New(slog.NewTextHandler(os.Stdout, nil)))
	r := h.SetupRouter(limiter, "../../web/templates/*.html", "")

	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("GET", "/health", nil)
	req1.RemoteAddr = "198.51.100.7:1234"
	r.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/health", nil)
	req2.RemoteAddr = "198.51.100.7:1234"
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}
