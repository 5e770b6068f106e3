package repository

import (
	"context"
	"sort"
	"sync"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
)

// MemoryCampaignRepository keeps campaigns in process. Callers get copies, so
// nothing outside Save mutates the stored record.
type MemoryCampaignRepository struct {
	mu        sync.Mutex
	campaigns map[string]*model.Campaign
}

func NewMemoryCampaignRepository() *MemoryCampaignRepository {
	return &MemoryCampaignRepository{campaigns: make(map[string]*model.Campaign)}
}

func (r *MemoryCampaignRepository) Save(_ context.Context, c *model.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.campaigns[c.LeadID] = cloneCampaign(c)
	return nil
}

func (r *MemoryCampaignRepository) Update(_ context.Context, c *model.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.campaigns[c.LeadID]
	if !ok || stored.Version != c.Version {
		return appErrors.ErrVersionConflict
	}

	c.Version++
	r.campaigns[c.LeadID] = cloneCampaign(c)
	return nil
}

func (r *MemoryCampaignRepository) GetByLeadID(_ context.Context, leadID string) (*model.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.campaigns[leadID]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(leadID)
	}
	return cloneCampaign(c), nil
}

func (r *MemoryCampaignRepository) ListByStatus(_ context.Context, status model.CampaignStatus) ([]*model.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaigns := []*model.Campaign{}
	for _, c := range r.campaigns {
		if c.Status == status {
			campaigns = append(campaigns, cloneCampaign(c))
		}
	}
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.Before(campaigns[j].CreatedAt)
	})
	return campaigns, nil
}

func cloneCampaign(c *model.Campaign) *model.Campaign {
	out := *c
	out.ScheduledTouchpoints = append([]model.ScheduledTouchpoint(nil), c.ScheduledTouchpoints...)
	out.CompletedTouchpoints = append([]model.ScheduledTouchpoint(nil), c.CompletedTouchpoints...)
	out.Tags = append([]string(nil), c.Tags...)
	return &out
}

var _ CampaignRepositoryInterface = (*MemoryCampaignRepository)(nil)
