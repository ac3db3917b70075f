package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BoulehmiHoussem/Logient/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ListLinks shows the caller's shortcuts, newest first.
func (h *Handler) ListLinks(c *gin.Context) {
	userID, _ := h.currentUserID(c)

	links, err := h.linkService.List(userID)
	if err != nil {
		h.logger.Error("Failed to list links", "user", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "links.html", gin.H{"Error": "Failed to load your shortcuts"})
		return
	}

	session := sessions.Default(c)
	flashes := session.Flashes()
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "user", userID, "error", err)
	}

	c.HTML(http.StatusOK, "links.html", gin.H{
		"Links":   links,
		"Flashes": flashes,
		"Host":    c.Request.Host,
	})
}

func (h *Handler) ShowCreateLink(c *gin.Context) {
	c.HTML(http.StatusOK, "link_create.html", gin.H{})
}

// CreateLink validates the submitted target URL against the quota policy
// and stores a new shortcut. Validation failures re-render the form with a
// field error and the old input.
func (h *Handler) CreateLink(c *gin.Context) {
	userID, _ := h.currentUserID(c)
	target := c.PostForm("link")

	link, err := h.linkService.Create(userID, target)
	if err != nil {
		if ve, ok := services.AsValidationError(err); ok {
			c.HTML(http.StatusUnprocessableEntity, "link_create.html", gin.H{
				"Error": ve.Message,
				"Old":   target,
			})
			return
		}
		h.logger.Error("Failed to create link", "user", userID, "error", err)
		c.HTML(http.StatusInternalServerError, "link_create.html", gin.H{
			"Error": "Failed to create the shortcut",
			"Old":   target,
		})
		return
	}

	h.logger.Info("Shortcut created", "user", userID, "shortcut", link.Shortcut)

	session := sessions.Default(c)
	session.AddFlash("Shortcut created.")
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "user", userID, "error", err)
	}

	c.Redirect(http.StatusFound, "/link")
}

// DeleteLink removes one of the caller's shortcuts. Ids owned by someone
// else get the same 404 as ids that do not exist.
func (h *Handler) DeleteLink(c *gin.Context) {
	userID, _ := h.currentUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.HTML(http.StatusNotFound, "404.html", gin.H{"error": "Link not found"})
		return
	}

	if err := h.linkService.Destroy(userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.HTML(http.StatusNotFound, "404.html", gin.H{"error": "Link not found"})
			return
		}
		h.logger.Error("Failed to delete link", "user", userID, "id", id, "error", err)
		c.HTML(http.StatusInternalServerError, "404.html", gin.H{"error": "Something went wrong"})
		return
	}

	session := sessions.Default(c)
	session.AddFlash("Shortcut deleted.")
	if err := session.Save(); err != nil {
		h.logger.Error("Failed to save session", "user", userID, "error", err)
	}

	c.Redirect(http.StatusFound, "/link")
}
