package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/proposal-backend/internal/handler"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/repository"
)

type failingRateRepo struct{}

func (failingRateRepo) Latest(ctx context.Context) (*model.RateSheet, error) {
	return nil, errors.New("connection refused")
}

func (failingRateRepo) Save(ctx context.Context, sheet model.RateSheet) error {
	return errors.New("connection refused")
}

func newRouter(repo repository.RateSheetRepositoryInterface) http.Handler {
	h := handler.NewRateSheetHandler(repo)
	h.Now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func TestGetRatesEmpty(t *testing.T) {
	r := newRouter(repository.NewMemoryRateSheetRepository(nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rates", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutThenGetRates(t *testing.T) {
	r := newRouter(repository.NewMemoryRateSheetRepository(nil))
	sheet := model.DefaultRateSheet()
	sheet.Conventional.Rate1 = 6.125
	b, err := json.Marshal(sheet)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/rates", bytes.NewReader(b)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rates", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got model.RateSheet
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 6.125, got.Conventional.Rate1)
	assert.Equal(t, "2026-03-10", got.EffectiveDate)
}

func TestPutRatesRejectsNegativeValues(t *testing.T) {
	r := newRouter(repository.NewMemoryRateSheetRepository(nil))
	sheet := model.DefaultRateSheet()
	sheet.HELOC.Fees = -1
	b, _ := json.Marshal(sheet)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/rates", bytes.NewReader(b)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/rates", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRatesStoreFailure(t *testing.T) {
	r := newRouter(failingRateRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rates", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	b, _ := json.Marshal(model.DefaultRateSheet())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/rates", bytes.NewReader(b)))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
