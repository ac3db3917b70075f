package handlers

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/BoulehmiHoussem/Logient/internal/config"
	"github.com/BoulehmiHoussem/Logient/internal/models"
	"github.com/BoulehmiHoussem/Logient/internal/services"
	"github.com/BoulehmiHoussem/Logient/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestHandler() (*Handler, *gorm.DB, *services.AccessLogger, string) {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	db.AutoMigrate(&models.User{}, &models.Link{})

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Config{
		SessionSecret:   "test-secret-12345678901234567890123456789012",
		MaxLinksPerUser: 5,
		MaxLinksTotal:   20,
	}

	geoIP := services.NewGeoIPService(cfg, logger)

	logFile, err := os.CreateTemp("", "access-*.log")
	if err != nil {
		panic("failed to create temp access log: " + err.Error())
	}
	logFile.Close()

	accessLogger, err := services.NewAccessLogger(logFile.Name(), geoIP, logger)
	if err != nil {
		panic("failed to open access log: " + err.Error())
	}

	linkService := services.NewLinkService(db, accessLogger, logger, cfg.MaxLinksPerUser, cfg.MaxLinksTotal)
	qrService := services.NewQRService()

	h := NewHandler(cfg, logger, db, linkService, qrService)
	return h, db, accessLogger, logFile.Name()
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil, "../../web/templates/*.html", "")
}

func createTestUser(db *gorm.DB, email string) models.User {
	hash, _ := utils.HashPassword("password123")
	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		APIKey:       utils.GenerateAPIKey(),
	}
	if err := db.Create(&user).Error; err != nil {
		panic("failed to create test user: " + err.Error())
	}
	return user
}

// loginTestUser performs a form login and returns the session cookies.
func loginTestUser(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()

	form := url.Values{"email": {email}, "password": {"password123"}}
	req, _ := http.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	return w.Result().Cookies()
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func seedTestLink(db *gorm.DB, userID uint, shortcut, target string) models.Link {
	link := models.Link{
		UserID:    userID,
		Shortcut:  shortcut,
		TargetURL: target,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&link).Error; err != nil {
		panic("failed to seed link: " + err.Error())
	}
	return link
}
