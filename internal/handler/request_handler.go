package handler

import (
	"errors"
	"log"
	"net/http"

	"community_help/internal/middleware"
	"community_help/internal/model"
	"community_help/internal/service"

	"github.com/gin-gonic/gin"
)

// RequestHandler handles public help request pages
type RequestHandler struct {
	requestService   service.RequestService
	volunteerService service.VolunteerService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(rs service.RequestService, vs service.VolunteerService) *RequestHandler {
	return &RequestHandler{requestService: rs, volunteerService: vs}
}

// ShowSubmitForm renders the help request submission form
func (h *RequestHandler) ShowSubmitForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Flashes": middleware.TakeFlashes(c),
	})
}

// SubmitRequest handles the help request form submission
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	form := model.CreateHelpRequestForm{
		Name:        c.PostForm("name"),
		Phone:       c.PostForm("phone"),
		Address:     c.PostForm("address"),
		Category:    c.PostForm("category"),
		Description: c.PostForm("description"),
	}

	req, err := h.requestService.SubmitRequest(c.Request.Context(), form)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			middleware.Flash(c, middleware.FlashError, "All fields are required. Please fill in every field.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		log.Printf("Error submitting help request: %v", err)
		middleware.Flash(c, middleware.FlashError, "Failed to submit your request. Please try again.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "success.html", gin.H{
		"Request": req,
	})
}

// ListRequests shows all help requests, newest first. A logged-in volunteer
// also sees new emergency alerts past their watermark.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	requests, err := h.requestService.ListRequests(c.Request.Context())
	if err != nil {
		log.Printf("Error listing help requests: %v", err)
		middleware.Flash(c, middleware.FlashError, "Failed to load help requests.")
	}

	var volunteer *model.Volunteer
	var alerts []model.HelpRequest
	if email := middleware.VolunteerEmail(c); email != "" {
		vol, err := h.volunteerService.GetByEmail(c.Request.Context(), email)
		if err != nil {
			// Stale session or lookup failure: render the page without alerts
			if !errors.Is(err, service.ErrVolunteerNotFound) {
				log.Printf("Error loading volunteer %s: %v", email, err)
			}
		} else {
			volunteer = vol
			alerts, err = h.volunteerService.NewEmergencyAlerts(c.Request.Context(), vol)
			if err != nil {
				log.Printf("Error loading emergency alerts: %v", err)
			}
		}
	}

	c.HTML(http.StatusOK, "requests.html", gin.H{
		"Requests":        requests,
		"EmergencyAlerts": alerts,
		"Volunteer":       volunteer,
		"Flashes":         middleware.TakeFlashes(c),
	})
}

// DismissAlerts advances the alert watermark for the logged-in volunteer
func (h *RequestHandler) DismissAlerts(c *gin.Context) {
	if email := middleware.VolunteerEmail(c); email != "" {
		if err := h.volunteerService.DismissAlerts(c.Request.Context(), email); err != nil {
			log.Printf("Error dismissing alerts for %s: %v", email, err)
		}
	}
	c.Redirect(http.StatusFound, "/requests")
}

// RegisterRequestRoutes registers the public request routes
func (h *RequestHandler) RegisterRequestRoutes(r *gin.Engine) {
	r.GET("/", h.ShowSubmitForm)
	r.POST("/submit", h.SubmitRequest)
	r.GET("/requests", h.ListRequests)
	r.POST("/dismiss-alerts", h.DismissAlerts)
}
