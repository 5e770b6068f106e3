package appErrors

import (
	"errors"
	"fmt"
)

// ErrCampaignNotFound is returned when no campaign is stored for a lead
type ErrCampaignNotFound struct {
	LeadID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign for lead %q not found", e.LeadID)
}

// Helper constructor
func NewCampaignNotFound(leadID string) error {
	return &ErrCampaignNotFound{LeadID: leadID}
}

// ErrTouchpointNotFound is returned for an index outside the campaign's schedule
type ErrTouchpointNotFound struct {
	LeadID string
	Index  int
}

func (e *ErrTouchpointNotFound) Error() string {
	return fmt.Sprintf("touchpoint %d not found in campaign for lead %q", e.Index, e.LeadID)
}

func NewTouchpointNotFound(leadID string, index int) error {
	return &ErrTouchpointNotFound{LeadID: leadID, Index: index}
}

// ErrUnknownCampaignType is returned when no template is registered under the name
type ErrUnknownCampaignType struct {
	CampaignType string
}

func (e *ErrUnknownCampaignType) Error() string {
	return fmt.Sprintf("unknown campaign type %q", e.CampaignType)
}

func NewUnknownCampaignType(name string) error {
	return &ErrUnknownCampaignType{CampaignType: name}
}

// ErrUnknownMessageTemplate is returned by the personalizer for a missing template key
type ErrUnknownMessageTemplate struct {
	Key string
}

func (e *ErrUnknownMessageTemplate) Error() string {
	return fmt.Sprintf("unknown message template %q", e.Key)
}

func NewUnknownMessageTemplate(key string) error {
	return &ErrUnknownMessageTemplate{Key: key}
}

var (
	ErrCampaignStopped       = errors.New("campaign is stopped")
	ErrInvalidStatus         = errors.New("invalid campaign status")
	ErrTouchpointAlreadySent = errors.New("touchpoint already sent")
	ErrRateSheetNotFound     = errors.New("rate sheet not found")
	ErrVersionConflict       = errors.New("campaign was modified concurrently")
)

// IsNotFound reports whether err means a campaign, touchpoint or rate sheet is missing.
func IsNotFound(err error) bool {
	var campaignErr *ErrCampaignNotFound
	var touchpointErr *ErrTouchpointNotFound
	return errors.As(err, &campaignErr) || errors.As(err, &touchpointErr) || errors.Is(err, ErrRateSheetNotFound)
}
