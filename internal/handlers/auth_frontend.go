package handlers

import (
	"net/http"

	"github.com/BoulehmiHoussem/Logient/internal/models"
	"github.com/BoulehmiHoussem/Logient/pkg/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func (h *Handler) HandleLoginForm(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	var user models.User
	result := h.db.Where("email = ?", email).First(&user)
	if result.Error != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials"})
		return
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": "Invalid credentials"})
		return
	}

	// Set Session
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/link")
}

func (h *Handler) HandleRegisterForm(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	// Check if user exists
	var existingUser models.User
	if err := h.db.Where("email = ?", email).First(&existingUser).Error; err == nil {
		c.HTML(http.StatusConflict, "register.html", gin.H{"Error": "Email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Failed to hash password"})
		return
	}

	newUser := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		APIKey:       utils.GenerateAPIKey(),
	}

	if err := h.db.Create(&newUser).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "register.html", gin.H{"Error": "Failed to create user"})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
