package model

import "time"

// DeliveryJob is a personalized touchpoint handed to a delivery agent.
type DeliveryJob struct {
	JobID         string    `json:"job_id"`
	LeadID        string    `json:"lead_id"`
	Index         int       `json:"index"`
	Channel       Channel   `json:"channel"`
	MessageKey    string    `json:"template"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Message       Message   `json:"message"`
	ScheduledTime time.Time `json:"scheduled_time"`
}
