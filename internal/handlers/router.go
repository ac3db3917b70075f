package handlers

import (
	"github.com/BoulehmiHoussem/Logient/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, templatePath string, staticPath string) *gin.Engine {
	r := gin.Default()

	if templatePath != "" {
		r.LoadHTMLGlob(templatePath)
	}
	if staticPath != "" {
		r.Static("/static", staticPath)
	}

	// Middleware
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	store := cookie.NewStore([]byte(h.cfg.SessionSecret))
	r.Use(sessions.Sessions("logient_session", store))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Public Routes
	r.GET("/", h.ShowIndex)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.HandleLoginForm)
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.HandleRegisterForm)
	r.POST("/api/register", h.RegisterUser)
	r.POST("/api/login", h.LoginUser)
	r.POST("/logout", h.LogoutUser)

	// Link management, session or API key required
	authorized := r.Group("/link")
	authorized.Use(h.AuthRequired())
	{
		authorized.GET("", h.ListLinks)
		authorized.GET("/create", h.ShowCreateLink)
		authorized.POST("", h.CreateLink)
		authorized.DELETE("/:id", h.DeleteLink)
		// HTML forms cannot issue DELETE.
		authorized.POST("/:id/delete", h.DeleteLink)
	}

	// Catch-all shortcut resolution
	r.GET("/:shortcut", h.RedirectShortcut)
	r.GET("/:shortcut/qr", h.ShortcutQR)

	return r
}
