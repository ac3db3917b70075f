package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/BoulehmiHoussem/Logient/internal/services"

	"github.com/gin-gonic/gin"
)

// RedirectShortcut resolves a shortcut and issues the redirect. Every
// successful resolution is recorded by the access logger, guests included.
func (h *Handler) RedirectShortcut(c *gin.Context) {
	shortcut := c.Param("shortcut")

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	entry := services.AccessEntry{
		Time:      time.Now(),
		Link:      scheme + "://" + c.Request.Host + c.Request.URL.RequestURI(),
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if uid, ok := h.currentUserID(c); ok {
		entry.UserID = &uid
	}

	target, err := h.linkService.Resolve(shortcut, entry)
	if errors.Is(err, services.ErrNotFound) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"error": "Link not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to resolve shortcut", "shortcut", shortcut, "error", err)
		c.HTML(http.StatusInternalServerError, "404.html", gin.H{"error": "Something went wrong"})
		return
	}

	c.Redirect(http.StatusFound, target)
}

// ShortcutQR serves a QR code pointing at the short URL.
func (h *Handler) ShortcutQR(c *gin.Context) {
	shortcut := c.Param("shortcut")

	if _, err := h.linkService.Get(shortcut); err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"error": "Link not found"})
		return
	}

	shortURL := "https://" + c.Request.Host + "/" + shortcut
	png, err := h.qrService.GeneratePNG(shortURL, 256)
	if err != nil {
		h.logger.Error("Failed to generate QR code", "shortcut", shortcut, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
