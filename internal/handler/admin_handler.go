package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"community_help/internal/middleware"
	"community_help/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the protected admin pages. Admin access is granted
// to a logged-in volunteer who supplies the configured access code.
type AdminHandler struct {
	requestService   service.RequestService
	volunteerService service.VolunteerService
	accessCode       string
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(rs service.RequestService, vs service.VolunteerService, accessCode string) *AdminHandler {
	return &AdminHandler{
		requestService:   rs,
		volunteerService: vs,
		accessCode:       accessCode,
	}
}

// requireVolunteerSession redirects to the volunteer login when no volunteer
// session exists. Returns the volunteer email and whether to continue.
func requireVolunteerSession(c *gin.Context) (string, bool) {
	email := middleware.VolunteerEmail(c)
	if email == "" {
		middleware.Flash(c, middleware.FlashError, "Please log in as a volunteer first before accessing the Admin Panel.")
		c.Redirect(http.StatusFound, "/volunteer/login")
		return "", false
	}
	return email, true
}

// ShowLoginForm renders the admin access code form
func (h *AdminHandler) ShowLoginForm(c *gin.Context) {
	if middleware.IsAdmin(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	email, ok := requireVolunteerSession(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"VolunteerEmail": email,
		"VolunteerName":  middleware.VolunteerName(c),
		"Flashes":        middleware.TakeFlashes(c),
	})
}

// Login grants admin access when the supplied access code matches and the
// session email still belongs to a registered volunteer
func (h *AdminHandler) Login(c *gin.Context) {
	if middleware.IsAdmin(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	email, ok := requireVolunteerSession(c)
	if !ok {
		return
	}

	accessCode := strings.TrimSpace(c.PostForm("access_code"))
	if accessCode == "" {
		middleware.Flash(c, middleware.FlashError, "Please enter the access code.")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}
	if accessCode != h.accessCode {
		middleware.Flash(c, middleware.FlashError, "Incorrect access code. Access denied.")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	// Verify the email still belongs to a registered volunteer
	vol, err := h.volunteerService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrVolunteerNotFound) {
			middleware.Flash(c, middleware.FlashError, "Access denied. Your volunteer account was not found.")
		} else {
			log.Printf("Error verifying volunteer for admin login: %v", err)
			middleware.Flash(c, middleware.FlashError, "Admin login failed. Please try again.")
		}
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.AdminLoggedInKey, true)
	session.Set(middleware.AdminEmailKey, email)
	session.Set(middleware.AdminNameKey, vol.Name)
	if err := session.Save(); err != nil {
		log.Printf("Error saving admin session: %v", err)
	}

	middleware.Flash(c, middleware.FlashSuccess, fmt.Sprintf("Welcome, %s! Admin access granted.", vol.Name))
	c.Redirect(http.StatusFound, "/admin")
}

// Logout clears the admin session keys, keeping the volunteer session intact
func (h *AdminHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.AdminLoggedInKey)
	session.Delete(middleware.AdminEmailKey)
	session.Delete(middleware.AdminNameKey)
	if err := session.Save(); err != nil {
		log.Printf("Error clearing admin session: %v", err)
	}

	middleware.Flash(c, middleware.FlashSuccess, "You have been logged out from Admin Panel.")
	c.Redirect(http.StatusFound, "/")
}

// Dashboard shows all help requests with urgency/status filters
func (h *AdminHandler) Dashboard(c *gin.Context) {
	urgencyFilter := c.DefaultQuery("urgency", "all")
	statusFilter := c.DefaultQuery("status", "all")

	requests, err := h.requestService.ListRequestsFiltered(c.Request.Context(), urgencyFilter, statusFilter)
	if err != nil {
		log.Printf("Error listing requests for admin: %v", err)
		middleware.Flash(c, middleware.FlashError, "Failed to load help requests.")
	}

	volunteerCount, err := h.volunteerService.CountVolunteers(c.Request.Context())
	if err != nil {
		log.Printf("Error counting volunteers: %v", err)
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Requests":       requests,
		"UrgencyFilter":  urgencyFilter,
		"StatusFilter":   statusFilter,
		"AdminName":      middleware.AdminName(c),
		"VolunteerCount": volunteerCount,
		"Flashes":        middleware.TakeFlashes(c),
	})
}

// ToggleStatus flips the solved status of a request, preserving the active
// filters on the redirect back to the dashboard
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.Flash(c, middleware.FlashError, "Invalid request ID.")
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	newStatus, err := h.requestService.ToggleSolvedStatus(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRequestNotFound) {
			middleware.Flash(c, middleware.FlashError, fmt.Sprintf("Request #%d not found.", id))
		} else {
			log.Printf("Error toggling request status: %v", err)
			middleware.Flash(c, middleware.FlashError, "Failed to update request status.")
		}
	} else {
		middleware.Flash(c, middleware.FlashSuccess, fmt.Sprintf("Request #%d marked as %s.", id, newStatus))
	}

	// Preserve current filters when redirecting back
	params := url.Values{}
	params.Set("urgency", c.DefaultPostForm("urgency_filter", "all"))
	params.Set("status", c.DefaultPostForm("status_filter", "all"))
	c.Redirect(http.StatusFound, "/admin?"+params.Encode())
}

// RegisterAdminRoutes registers the admin routes; the dashboard and status
// toggle are protected by the adminRequired middleware
func (h *AdminHandler) RegisterAdminRoutes(r *gin.Engine, adminRequired gin.HandlerFunc) {
	r.GET("/admin/login", h.ShowLoginForm)
	r.POST("/admin/login", h.Login)
	r.GET("/admin/logout", h.Logout)
	r.GET("/admin", adminRequired, h.Dashboard)
	r.POST("/admin/toggle/:id", adminRequired, h.ToggleStatus)
}
