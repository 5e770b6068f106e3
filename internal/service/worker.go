package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
)

// TouchpointMarker is what the worker needs to check and report a delivery.
type TouchpointMarker interface {
	GetCampaign(ctx context.Context, leadID string) (*model.Campaign, error)
	MarkSent(ctx context.Context, leadID string, index int) (*model.ScheduledTouchpoint, error)
}

// Worker hands delivery jobs to a sender and records the ones that went out.
type Worker struct {
	Campaigns TouchpointMarker
	SendFunc  func(job model.DeliveryJob) bool
}

func NewWorker(campaigns TouchpointMarker, sendFunc func(job model.DeliveryJob) bool) *Worker {
	return &Worker{
		Campaigns: campaigns,
		SendFunc:  sendFunc,
	}
}

// Deliver sends one job. A returned error asks the queue to retry. Jobs whose
// campaign is no longer active, or whose touchpoint is no longer pending, are
// acknowledged without sending.
func (w *Worker) Deliver(ctx context.Context, job model.DeliveryJob) error {
	c, err := w.Campaigns.GetCampaign(ctx, job.LeadID)
	if err != nil {
		if appErrors.IsNotFound(err) {
			log.Printf("dropping job %s: %v", job.JobID, err)
			return nil
		}
		return err
	}
	if reason := staleReason(c, job); reason != "" {
		log.Printf("dropping job %s for lead %s touchpoint %d: %s", job.JobID, job.LeadID, job.Index, reason)
		return nil
	}

	if !w.SendFunc(job) {
		return fmt.Errorf("delivery of lead %s touchpoint %d failed", job.LeadID, job.Index)
	}

	_, err = w.Campaigns.MarkSent(ctx, job.LeadID, job.Index)
	switch {
	case err == nil:
		log.Printf("lead %s touchpoint %d sent via %s", job.LeadID, job.Index, job.Channel)
		return nil
	case errors.Is(err, appErrors.ErrTouchpointAlreadySent):
		return nil
	case appErrors.IsNotFound(err):
		// campaign removed while the send was in flight
		log.Printf("dropping job %s: %v", job.JobID, err)
		return nil
	}
	return err
}

func staleReason(c *model.Campaign, job model.DeliveryJob) string {
	if c.Status != model.CampaignActive {
		return "campaign is " + string(c.Status)
	}
	if job.Index < 0 || job.Index >= len(c.ScheduledTouchpoints) {
		return "touchpoint no longer exists"
	}
	tp := c.ScheduledTouchpoints[job.Index]
	if tp.Status != model.TouchpointPending {
		return "touchpoint already " + string(tp.Status)
	}
	if tp.MessageKey != job.MessageKey || !tp.ScheduledTime.Equal(job.ScheduledTime) {
		return "campaign was replaced"
	}
	return ""
}

// MockSend stands in for the SMS, email and voicemail providers. It succeeds
// nine times out of ten.
func MockSend(job model.DeliveryJob) bool {
	return rand.Float64() < 0.9
}
