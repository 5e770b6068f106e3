package model

import "time"

type CampaignStatus string

const (
	CampaignActive  CampaignStatus = "active"
	CampaignPaused  CampaignStatus = "paused"
	CampaignStopped CampaignStatus = "stopped"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignActive, CampaignPaused, CampaignStopped:
		return true
	}
	return false
}

// Campaign is a lead's running drip sequence. LeadID is the storage key; a new
// campaign for the same lead replaces the previous one. Version counts stored
// revisions and guards concurrent updates.
type Campaign struct {
	LeadID               string                `json:"lead_id"`
	Version              int                   `json:"version"`
	CampaignType         string                `json:"campaign_type"`
	TemplateVersion      int                   `json:"template_version"`
	Status               CampaignStatus        `json:"status"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            *time.Time            `json:"updated_at,omitempty"`
	Lead                 BorrowerFacts         `json:"lead_data"`
	ScheduledTouchpoints []ScheduledTouchpoint `json:"scheduled_touchpoints"`
	CompletedTouchpoints []ScheduledTouchpoint `json:"completed_touchpoints"`
	Tags                 []string              `json:"tags"`
}

// DueTouchpoint pairs a pending touchpoint with its index in the schedule.
type DueTouchpoint struct {
	Index      int                 `json:"index"`
	Touchpoint ScheduledTouchpoint `json:"touchpoint"`
}

// Message is a personalized touchpoint ready for a delivery agent.
type Message struct {
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body,omitempty"`
	Script     string `json:"script,omitempty"`
	Attachment string `json:"attachment,omitempty"`
}
