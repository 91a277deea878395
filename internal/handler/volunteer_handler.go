package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"community_help/internal/middleware"
	"community_help/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// VolunteerHandler handles volunteer registration and login pages
type VolunteerHandler struct {
	service service.VolunteerService
}

// NewVolunteerHandler creates a new VolunteerHandler
func NewVolunteerHandler(s service.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{service: s}
}

// loginVolunteer stores the volunteer identity in the session
func loginVolunteer(c *gin.Context, email, name string) error {
	session := sessions.Default(c)
	session.Set(middleware.VolunteerEmailKey, email)
	session.Set(middleware.VolunteerNameKey, name)
	return session.Save()
}

// ShowRegisterForm renders the volunteer registration form
func (h *VolunteerHandler) ShowRegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "volunteer_register.html", gin.H{
		"Flashes": middleware.TakeFlashes(c),
	})
}

// Register creates a new volunteer account and logs them in
func (h *VolunteerHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	phone := c.PostForm("phone")
	email := c.PostForm("email")

	vol, err := h.service.Register(c.Request.Context(), name, phone, email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			middleware.Flash(c, middleware.FlashError, "All fields are required.")
		case errors.Is(err, service.ErrEmailTaken):
			middleware.Flash(c, middleware.FlashError, "This email is already registered as a volunteer.")
		default:
			log.Printf("Error registering volunteer: %v", err)
			middleware.Flash(c, middleware.FlashError, "Registration failed. Please try again.")
		}
		c.Redirect(http.StatusFound, "/volunteer/register")
		return
	}

	// Auto-login the volunteer
	if err := loginVolunteer(c, vol.Email, vol.Name); err != nil {
		log.Printf("Error saving volunteer session: %v", err)
	}

	middleware.Flash(c, middleware.FlashSuccess, fmt.Sprintf("Welcome, %s! You are now registered as a volunteer.", vol.Name))
	c.Redirect(http.StatusFound, "/requests")
}

// ShowLoginForm renders the volunteer login form
func (h *VolunteerHandler) ShowLoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "volunteer_login.html", gin.H{
		"Flashes": middleware.TakeFlashes(c),
	})
}

// Login authenticates an existing volunteer by email
func (h *VolunteerHandler) Login(c *gin.Context) {
	email := c.PostForm("email")

	vol, err := h.service.Login(c.Request.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			middleware.Flash(c, middleware.FlashError, "Please enter your email.")
			c.Redirect(http.StatusFound, "/volunteer/login")
		case errors.Is(err, service.ErrVolunteerNotFound):
			middleware.Flash(c, middleware.FlashError, "Email not found. Please register first.")
			c.Redirect(http.StatusFound, "/volunteer/register")
		default:
			log.Printf("Error logging in volunteer: %v", err)
			middleware.Flash(c, middleware.FlashError, "Login failed. Please try again.")
			c.Redirect(http.StatusFound, "/volunteer/login")
		}
		return
	}

	if err := loginVolunteer(c, vol.Email, vol.Name); err != nil {
		log.Printf("Error saving volunteer session: %v", err)
	}

	middleware.Flash(c, middleware.FlashSuccess, fmt.Sprintf("Welcome back, %s!", vol.Name))
	c.Redirect(http.StatusFound, "/requests")
}

// Logout clears the volunteer session keys
func (h *VolunteerHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.VolunteerEmailKey)
	session.Delete(middleware.VolunteerNameKey)
	if err := session.Save(); err != nil {
		log.Printf("Error clearing volunteer session: %v", err)
	}

	middleware.Flash(c, middleware.FlashSuccess, "You have been logged out.")
	c.Redirect(http.StatusFound, "/requests")
}

// RegisterVolunteerRoutes registers the volunteer routes
func (h *VolunteerHandler) RegisterVolunteerRoutes(r *gin.Engine) {
	volGroup := r.Group("/volunteer")
	{
		volGroup.GET("/register", h.ShowRegisterForm)
		volGroup.POST("/register", h.Register)
		volGroup.GET("/login", h.ShowLoginForm)
		volGroup.POST("/login", h.Login)
		volGroup.GET("/logout", h.Logout)
	}
}
