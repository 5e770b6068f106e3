package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
)

const (
	campaignKeyPrefix = "campaign:"
	statusKeyPrefix   = "campaigns:status:"
)

var campaignStatuses = []model.CampaignStatus{model.CampaignActive, model.CampaignPaused, model.CampaignStopped}

// RedisCampaignRepository stores each campaign as a JSON string under
// campaign:<lead_id> and indexes lead IDs by status in sets.
type RedisCampaignRepository struct {
	Client redis.UniversalClient
}

func (r *RedisCampaignRepository) Save(ctx context.Context, c *model.Campaign) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", c.LeadID, err)
	}

	_, err = r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		writeCampaign(ctx, pipe, c, payload)
		return nil
	})
	return err
}

// Update watches the campaign key so a write from another client between the
// version check and EXEC aborts the transaction.
func (r *RedisCampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	next := *c
	next.Version = c.Version + 1
	payload, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", c.LeadID, err)
	}

	key := campaignKeyPrefix + c.LeadID
	err = r.Client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return appErrors.ErrVersionConflict
		}
		if err != nil {
			return err
		}
		stored, err := decodeCampaign(raw)
		if err != nil {
			return err
		}
		if stored.Version != c.Version {
			return appErrors.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			writeCampaign(ctx, pipe, &next, payload)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return appErrors.ErrVersionConflict
	}
	if err != nil {
		return err
	}

	c.Version = next.Version
	return nil
}

// writeCampaign queues the document write and moves the lead into the set for
// its current status.
func writeCampaign(ctx context.Context, pipe redis.Pipeliner, c *model.Campaign, payload []byte) {
	pipe.Set(ctx, campaignKeyPrefix+c.LeadID, payload, 0)
	for _, s := range campaignStatuses {
		pipe.SRem(ctx, statusKeyPrefix+string(s), c.LeadID)
	}
	pipe.SAdd(ctx, statusKeyPrefix+string(c.Status), c.LeadID)
}

func (r *RedisCampaignRepository) GetByLeadID(ctx context.Context, leadID string) (*model.Campaign, error) {
	payload, err := r.Client.Get(ctx, campaignKeyPrefix+leadID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.NewCampaignNotFound(leadID)
		}
		return nil, err
	}
	return decodeCampaign(payload)
}

func (r *RedisCampaignRepository) ListByStatus(ctx context.Context, status model.CampaignStatus) ([]*model.Campaign, error) {
	leadIDs, err := r.Client.SMembers(ctx, statusKeyPrefix+string(status)).Result()
	if err != nil {
		return nil, err
	}

	campaigns := []*model.Campaign{}
	if len(leadIDs) == 0 {
		return campaigns, nil
	}

	keys := make([]string, len(leadIDs))
	for i, id := range leadIDs {
		keys[i] = campaignKeyPrefix + id
	}

	values, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// deleted between SMEMBERS and MGET
			continue
		}
		c, err := decodeCampaign([]byte(s))
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.Before(campaigns[j].CreatedAt)
	})
	return campaigns, nil
}

var _ CampaignRepositoryInterface = (*RedisCampaignRepository)(nil)
