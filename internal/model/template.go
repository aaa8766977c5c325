package model

import (
	"errors"
	"time"
)

// Placeholders substituted literally into template bodies. Substitution is
// plain string replacement, never expression evaluation.
const (
	PlaceholderTrackingURL = "{{tracking_url}}"
	PlaceholderTargetEmail = "{{target_email}}"
	PlaceholderTargetName  = "{{target_name}}"
	PlaceholderToken       = "{{token}}"
)

// Template is reusable phishing content: an email body plus the landing page
// shown after the tracked link is clicked.
type Template struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	LandingPage string    `json:"landing_page"`
	Category    string    `json:"category"` // credential_harvesting, urgent_action, ceo_fraud, ...
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TemplateCreateRequest is the input for creating a template.
type TemplateCreateRequest struct {
	Name        string
	Subject     string
	Body        string
	LandingPage string
	Category    string
	Difficulty  string
}

func (p TemplateCreateRequest) Validate() error {
	if p.Name == "" || p.Subject == "" || p.Body == "" || p.LandingPage == "" || p.Category == "" {
		return errors.New("name, subject, body, landing_page and category are required")
	}
	return nil
}
