package middleware

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys for the volunteer and admin login state
const (
	SessionName = "community_help_session"

	VolunteerEmailKey = "volunteer_email"
	VolunteerNameKey  = "volunteer_name"
	AdminLoggedInKey  = "admin_logged_in"
	AdminEmailKey     = "admin_email"
	AdminNameKey      = "admin_name"
)

// Flash categories
const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// sessionString reads a string value from the session, tolerating absence
func sessionString(c *gin.Context, key string) string {
	val := sessions.Default(c).Get(key)
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return s
}

// VolunteerEmail returns the logged-in volunteer's email, or "" when not logged in
func VolunteerEmail(c *gin.Context) string {
	return sessionString(c, VolunteerEmailKey)
}

// VolunteerName returns the logged-in volunteer's name, or ""
func VolunteerName(c *gin.Context) string {
	return sessionString(c, VolunteerNameKey)
}

// IsAdmin reports whether the session holds an admin login flag
func IsAdmin(c *gin.Context) bool {
	val := sessions.Default(c).Get(AdminLoggedInKey)
	flag, ok := val.(bool)
	return ok && flag
}

// AdminName returns the display name of the logged-in admin, or "Admin"
func AdminName(c *gin.Context) string {
	if name := sessionString(c, AdminNameKey); name != "" {
		return name
	}
	return "Admin"
}

// Flash queues a message under the given category for the next rendered page
func Flash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	if err := session.Save(); err != nil {
		log.Printf("failed to save session: %v", err)
	}
}

// TakeFlashes consumes and returns all queued flash messages by category
func TakeFlashes(c *gin.Context) map[string][]string {
	session := sessions.Default(c)
	flashes := map[string][]string{}
	for _, category := range []string{FlashError, FlashSuccess} {
		for _, val := range session.Flashes(category) {
			if msg, ok := val.(string); ok {
				flashes[category] = append(flashes[category], msg)
			}
		}
	}
	if err := session.Save(); err != nil {
		log.Printf("failed to save session: %v", err)
	}
	return flashes
}

// AdminRequired protects routes so only authenticated admins can access them.
// Denied callers get an error flash and a redirect to the admin login page.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			Flash(c, FlashError, "Access denied. Please log in to the Admin Panel.")
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
