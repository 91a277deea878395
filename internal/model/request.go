package model

import "time"

// Urgency levels assigned by the classifier at creation time.
type Urgency string

const (
	UrgencyEmergency Urgency = "Emergency"
	UrgencyMedium    Urgency = "Medium"
	UrgencyLow       Urgency = "Low"
)

// SolvedStatus is the resolution state of a help request
type SolvedStatus string

const (
	StatusUnsolved SolvedStatus = "Unsolved"
	StatusSolved   SolvedStatus = "Solved"
)

// HelpRequest represents a community help request submitted by a resident
type HelpRequest struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	Category     string       `json:"category"`
	Description  string       `json:"description"`
	Urgency      Urgency      `json:"urgency"`
	SolvedStatus SolvedStatus `json:"solved_status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// CreateHelpRequestForm carries the raw submission form fields.
// All fields are required; validation happens after trimming.
type CreateHelpRequestForm struct {
	Name        string `form:"name"`
	Phone       string `form:"phone"`
	Address     string `form:"address"`
	Category    string `form:"category"`
	Description string `form:"description"`
}

// RequestFilters contains optional filter predicates for admin request queries.
// Nil means no constraint; both predicates are ANDed when present.
type RequestFilters struct {
	Urgency      *Urgency
	SolvedStatus *SolvedStatus
}
