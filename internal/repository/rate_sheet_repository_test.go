package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/repository"
)

func TestRateSheetRepository_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := &repository.RateSheetRepository{DB: db}
	want := model.DefaultRateSheet()
	want.EffectiveDate = "2026-03-10"
	payload, _ := json.Marshal(want)

	mock.ExpectQuery("SELECT payload FROM rate_sheets").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestRateSheetRepository_LatestEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := &repository.RateSheetRepository{DB: db}
	mock.ExpectQuery("SELECT payload FROM rate_sheets").WillReturnError(sql.ErrNoRows)

	_, err = repo.Latest(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrRateSheetNotFound)
}

func TestRateSheetRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := &repository.RateSheetRepository{DB: db}
	sheet := model.DefaultRateSheet()
	sheet.EffectiveDate = "2026-03-11"

	mock.ExpectExec("INSERT INTO rate_sheets").
		WithArgs("2026-03-11", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	require.NoError(t, repo.Save(context.Background(), sheet))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryRateSheetRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRateSheetRepository(nil)

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, appErrors.ErrRateSheetNotFound)

	sheet := model.DefaultRateSheet()
	require.NoError(t, repo.Save(ctx, sheet))
	got, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, sheet, *got)
}
