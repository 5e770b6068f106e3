package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/unclebandit/proposal-backend/internal/campaign"
	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/repository"
)

const TagResponded = "responded"

// maxUpdateAttempts bounds the reload-and-retry loop on version conflicts.
const maxUpdateAttempts = 5

// CampaignService owns the campaign lifecycle: active and paused can move
// between each other, stopped is final. Writes for one lead are serialized in
// process, and every change is a versioned read-modify-write so writers in
// other processes retry instead of overwriting each other.
type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	Templates    *campaign.Registry
	Scheduler    *campaign.Scheduler
	Personalizer *campaign.Personalizer
	Now          func() time.Time

	locks leadLocks
}

func (s *CampaignService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateCampaign schedules a fresh campaign for the lead and replaces any
// campaign stored for it.
func (s *CampaignService) CreateCampaign(ctx context.Context, leadID, campaignType string, lead model.BorrowerFacts) (*model.Campaign, error) {
	if strings.TrimSpace(leadID) == "" {
		return nil, fmt.Errorf("lead_id is required")
	}

	unlock := s.locks.lock(leadID)
	defer unlock()

	tmpl, err := s.Templates.Get(campaignType)
	if err != nil {
		return nil, err
	}

	c := &model.Campaign{
		LeadID:               leadID,
		Version:              1,
		CampaignType:         campaignType,
		TemplateVersion:      tmpl.Version,
		Status:               model.CampaignActive,
		CreatedAt:            s.now(),
		Lead:                 lead,
		ScheduledTouchpoints: s.Scheduler.Schedule(tmpl, lead),
		CompletedTouchpoints: []model.ScheduledTouchpoint{},
		Tags:                 []string{campaignType},
	}

	if err := s.CampaignRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save campaign for lead %s: %w", leadID, err)
	}

	log.Printf("campaign %s created for lead %s with %d touchpoints", campaignType, leadID, len(c.ScheduledTouchpoints))
	return c, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, leadID string) (*model.Campaign, error) {
	return s.CampaignRepo.GetByLeadID(ctx, leadID)
}

// SetStatus moves the campaign to status. A stopped campaign stays stopped.
func (s *CampaignService) SetStatus(ctx context.Context, leadID string, status model.CampaignStatus) (*model.Campaign, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", appErrors.ErrInvalidStatus, status)
	}

	c, err := s.update(ctx, leadID, func(c *model.Campaign) (bool, error) {
		if c.Status == status {
			return false, nil
		}
		if c.Status == model.CampaignStopped {
			return false, appErrors.ErrCampaignStopped
		}
		c.Status = status
		return true, nil
	})
	if err != nil {
		return c, err
	}

	log.Printf("campaign for lead %s is now %s", leadID, c.Status)
	return c, nil
}

// MarkSent records delivery of the touchpoint at index. Each touchpoint can be
// marked once.
func (s *CampaignService) MarkSent(ctx context.Context, leadID string, index int) (*model.ScheduledTouchpoint, error) {
	c, err := s.update(ctx, leadID, func(c *model.Campaign) (bool, error) {
		if index < 0 || index >= len(c.ScheduledTouchpoints) {
			return false, appErrors.NewTouchpointNotFound(leadID, index)
		}

		tp := &c.ScheduledTouchpoints[index]
		if tp.Status == model.TouchpointSent {
			return false, appErrors.ErrTouchpointAlreadySent
		}

		sentAt := s.now()
		tp.Status = model.TouchpointSent
		tp.SentAt = &sentAt
		c.CompletedTouchpoints = append(c.CompletedTouchpoints, *tp)
		return true, nil
	})
	if c == nil || index < 0 || index >= len(c.ScheduledTouchpoints) {
		return nil, err
	}
	return &c.ScheduledTouchpoints[index], err
}

// update loads the lead's campaign, applies fn and writes it back under the
// version it was read at. fn reports whether it changed anything; an error
// from fn aborts without writing and is returned with the campaign as read.
func (s *CampaignService) update(ctx context.Context, leadID string, fn func(c *model.Campaign) (bool, error)) (*model.Campaign, error) {
	unlock := s.locks.lock(leadID)
	defer unlock()

	for attempt := 1; ; attempt++ {
		c, err := s.CampaignRepo.GetByLeadID(ctx, leadID)
		if err != nil {
			return nil, err
		}

		changed, err := fn(c)
		if err != nil || !changed {
			return c, err
		}

		s.touch(c)
		err = s.CampaignRepo.Update(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, appErrors.ErrVersionConflict) || attempt >= maxUpdateAttempts {
			return nil, fmt.Errorf("update campaign for lead %s: %w", leadID, err)
		}
	}
}

// PendingDue lists touchpoints whose time has come. Paused and stopped
// campaigns have nothing due.
func (s *CampaignService) PendingDue(ctx context.Context, leadID string, now time.Time) ([]model.DueTouchpoint, error) {
	c, err := s.CampaignRepo.GetByLeadID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	return dueTouchpoints(c, now), nil
}

func dueTouchpoints(c *model.Campaign, now time.Time) []model.DueTouchpoint {
	due := []model.DueTouchpoint{}
	if c.Status != model.CampaignActive {
		return due
	}

	for i, tp := range c.ScheduledTouchpoints {
		if tp.Status == model.TouchpointPending && !tp.ScheduledTime.After(now) {
			due = append(due, model.DueTouchpoint{Index: i, Touchpoint: tp})
		}
	}
	return due
}

// Respond stops the lead's campaign because the borrower replied, tagging it
// as responded. With startFollowUp the responded campaign replaces it, built
// from the same lead snapshot.
func (s *CampaignService) Respond(ctx context.Context, leadID string, startFollowUp bool) (*model.Campaign, error) {
	c, err := s.update(ctx, leadID, func(c *model.Campaign) (bool, error) {
		tags := addTag(c.Tags, TagResponded)
		if c.Status == model.CampaignStopped && len(tags) == len(c.Tags) {
			return false, nil
		}
		c.Status = model.CampaignStopped
		c.Tags = tags
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if !startFollowUp {
		return c, nil
	}
	return s.CreateCampaign(ctx, leadID, campaign.TypeResponded, c.Lead)
}

func (s *CampaignService) ListActive(ctx context.Context) ([]*model.Campaign, error) {
	return s.CampaignRepo.ListByStatus(ctx, model.CampaignActive)
}

// RenderTouchpoint personalizes the touchpoint at index from the lead facts
// captured when the campaign was created.
func (s *CampaignService) RenderTouchpoint(ctx context.Context, leadID string, index int) (model.Message, error) {
	c, err := s.CampaignRepo.GetByLeadID(ctx, leadID)
	if err != nil {
		return model.Message{}, err
	}
	if index < 0 || index >= len(c.ScheduledTouchpoints) {
		return model.Message{}, appErrors.NewTouchpointNotFound(leadID, index)
	}
	return s.Personalizer.Personalize(c.ScheduledTouchpoints[index].MessageKey, c.Lead)
}

func (s *CampaignService) touch(c *model.Campaign) {
	now := s.now()
	c.UpdatedAt = &now
}

func addTag(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
