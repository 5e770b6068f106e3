package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
)

// CampaignRepositoryInterface stores whole campaigns keyed by lead ID. Save
// overwrites whatever was stored for the lead. Update only writes when the
// stored version still equals c.Version, then bumps c.Version; otherwise it
// returns appErrors.ErrVersionConflict and the caller reloads.
type CampaignRepositoryInterface interface {
	Save(ctx context.Context, c *model.Campaign) error
	Update(ctx context.Context, c *model.Campaign) error
	GetByLeadID(ctx context.Context, leadID string) (*model.Campaign, error)
	ListByStatus(ctx context.Context, status model.CampaignStatus) ([]*model.Campaign, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Save(ctx context.Context, c *model.Campaign) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", c.LeadID, err)
	}

	updatedAt := time.Now()
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	query := `
        INSERT INTO campaigns (lead_id, campaign_type, status, payload, created_at, updated_at, version)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (lead_id) DO UPDATE
        SET campaign_type=EXCLUDED.campaign_type, status=EXCLUDED.status, payload=EXCLUDED.payload,
            created_at=EXCLUDED.created_at, updated_at=EXCLUDED.updated_at, version=EXCLUDED.version
    `
	_, err = r.DB.ExecContext(ctx, query, c.LeadID, c.CampaignType, c.Status, payload, c.CreatedAt, updatedAt, c.Version)
	return err
}

func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	next := *c
	next.Version = c.Version + 1
	payload, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", c.LeadID, err)
	}

	updatedAt := time.Now()
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	query := `
        UPDATE campaigns
        SET campaign_type=$1, status=$2, payload=$3, updated_at=$4, version=$5
        WHERE lead_id=$6 AND version=$7
    `
	res, err := r.DB.ExecContext(ctx, query, c.CampaignType, c.Status, payload, updatedAt, next.Version, c.LeadID, c.Version)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.ErrVersionConflict
	}

	c.Version = next.Version
	return nil
}

func (r *CampaignRepository) GetByLeadID(ctx context.Context, leadID string) (*model.Campaign, error) {
	query := `SELECT payload FROM campaigns WHERE lead_id=$1`

	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, leadID).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(leadID)
		}
		return nil, err
	}
	return decodeCampaign(payload)
}

func (r *CampaignRepository) ListByStatus(ctx context.Context, status model.CampaignStatus) ([]*model.Campaign, error) {
	query := `SELECT payload FROM campaigns WHERE status=$1 ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		c, err := decodeCampaign(payload)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func decodeCampaign(payload []byte) (*model.Campaign, error) {
	var c model.Campaign
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("decode campaign: %w", err)
	}
	return &c, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
