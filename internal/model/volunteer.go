package model

import "time"

// Volunteer represents a registered community volunteer
type Volunteer struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"` // unique, compared case-insensitively
	RegisteredAt time.Time `json:"registered_at"`
	// LastSeenAlertID is the highest help-request ID this volunteer has
	// acknowledged. Emergency requests with a greater ID count as new alerts.
	LastSeenAlertID int64 `json:"last_seen_alert_id"`
}
