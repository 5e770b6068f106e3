package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
)

// RateSheetRepositoryInterface keeps the operator's daily pricing. Every save
// is a new revision; Latest returns the newest.
type RateSheetRepositoryInterface interface {
	Latest(ctx context.Context) (*model.RateSheet, error)
	Save(ctx context.Context, sheet model.RateSheet) error
}

type RateSheetRepository struct {
	DB *sql.DB
}

func (r *RateSheetRepository) Latest(ctx context.Context) (*model.RateSheet, error) {
	query := `SELECT payload FROM rate_sheets ORDER BY created_at DESC, id DESC LIMIT 1`

	var payload []byte
	if err := r.DB.QueryRowContext(ctx, query).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrRateSheetNotFound
		}
		return nil, err
	}

	var sheet model.RateSheet
	if err := json.Unmarshal(payload, &sheet); err != nil {
		return nil, fmt.Errorf("decode rate sheet: %w", err)
	}
	return &sheet, nil
}

func (r *RateSheetRepository) Save(ctx context.Context, sheet model.RateSheet) error {
	payload, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("encode rate sheet: %w", err)
	}

	query := `INSERT INTO rate_sheets (effective_date, payload, created_at) VALUES ($1, $2, NOW())`
	_, err = r.DB.ExecContext(ctx, query, sheet.EffectiveDate, payload)
	return err
}

// MemoryRateSheetRepository holds a single rate sheet in process.
type MemoryRateSheetRepository struct {
	mu    sync.Mutex
	sheet *model.RateSheet
}

func NewMemoryRateSheetRepository(initial *model.RateSheet) *MemoryRateSheetRepository {
	return &MemoryRateSheetRepository{sheet: initial}
}

func (r *MemoryRateSheetRepository) Latest(_ context.Context) (*model.RateSheet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sheet == nil {
		return nil, appErrors.ErrRateSheetNotFound
	}
	sheet := *r.sheet
	return &sheet, nil
}

func (r *MemoryRateSheetRepository) Save(_ context.Context, sheet model.RateSheet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sheet = &sheet
	return nil
}

var (
	_ RateSheetRepositoryInterface = (*RateSheetRepository)(nil)
	_ RateSheetRepositoryInterface = (*MemoryRateSheetRepository)(nil)
)
