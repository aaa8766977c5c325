package model

import (
	"errors"
	"time"
)

// CampaignStatus is the lifecycle state of a campaign.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

type Campaign struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	TemplateID  int64          `json:"template_id"`
	Status      CampaignStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	LaunchedAt  *time.Time     `json:"launched_at,omitempty"`
}

// CampaignCreateRequest is the input for creating a campaign.
type CampaignCreateRequest struct {
	Name        string
	Description string
	TemplateID  int64
}

func (p CampaignCreateRequest) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.TemplateID == 0 {
		return errors.New("template_id is required")
	}
	return nil
}

// CampaignFilter controls List queries.
type CampaignFilter struct {
	Statuses []CampaignStatus // IN (...)
	Limit    int
	Offset   int
	Desc     bool // order by created_at
}
