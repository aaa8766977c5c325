package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Target is one recipient inside one campaign. The token is the sole lookup
// key for every tracking and submission endpoint: possession of the token
// authorizes the action, nothing else is checked.
//
// The four timestamps are independent monotonic flags. Each is set at most
// once and no earlier stage is a precondition for a later one, so out-of-order
// events (a click before a send) are accepted.
type Target struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	CampaignID int64  `json:"campaign_id"`
	Token      string `json:"token"`

	SentAt      *time.Time `json:"sent_at,omitempty"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	ClickedAt   *time.Time `json:"clicked_at,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`

	// captured for analyst review only
	SubmittedData string `json:"submitted_data,omitempty"`
	IPAddress     string `json:"ip_address,omitempty"`
	UserAgent     string `json:"user_agent,omitempty"`
}

// DisplayName falls back to the email address when no name was recorded.
func (t *Target) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Email
}

// NewToken allocates a fresh unguessable target token, unique system-wide.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
