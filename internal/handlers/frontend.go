package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ShowIndex(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("user_id")

	c.HTML(http.StatusOK, "index.html", gin.H{
		"User": user,
	})
}

func (h *Handler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}
