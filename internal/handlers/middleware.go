package handlers

import (
	"net/http"
	"strings"

	"github.com/BoulehmiHoussem/Logient/internal/models"
	"github.com/BoulehmiHoussem/Logient/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// currentUserID resolves the acting principal from the request context
// (API-key auth) or the session. ok is false for guests.
func (h *Handler) currentUserID(c *gin.Context) (uint, bool) {
	if val, exists := c.Get("user_id"); exists {
		return val.(uint), true
	}
	session := sessions.Default(c)
	if val := session.Get("user_id"); val != nil {
		return val.(uint), true
	}
	return 0, false
}

func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		user := session.Get("user_id")
		if user == nil {
			// Check for API Key if session is missing
			apiKey := c.GetHeader("X-API-Key")
			if apiKey != "" {
				var u models.User
				if err := h.db.Where("api_key = ?", apiKey).First(&u).Error; err == nil {
					c.Set("user_id", u.ID)
					c.Next()
					return
				}
			}

			if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.GetHeader("Accept") == "application/json" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			} else {
				c.Redirect(http.StatusFound, "/login")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		l := limiter.GetLimiter(ip)
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
