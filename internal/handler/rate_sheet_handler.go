// internal/handler/rate_sheet_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/repository"
)

// RateSheetHandler exposes the operator's daily pricing.
type RateSheetHandler struct {
	Repo repository.RateSheetRepositoryInterface
	Now  func() time.Time
}

// NewRateSheetHandler creates a new RateSheetHandler with the given repository
func NewRateSheetHandler(repo repository.RateSheetRepositoryInterface) *RateSheetHandler {
	return &RateSheetHandler{Repo: repo, Now: time.Now}
}

func (h *RateSheetHandler) Routes(r chi.Router) {
	r.Get("/rates", h.GetRatesHandler)
	r.Put("/rates", h.PutRatesHandler)
}

// GetRatesHandler returns the latest rate sheet
func (h *RateSheetHandler) GetRatesHandler(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.Repo.Latest(r.Context())
	if err != nil {
		if errors.Is(err, appErrors.ErrRateSheetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Println("Error fetching rate sheet:", err)
		http.Error(w, "failed to fetch rate sheet: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}

// PutRatesHandler stores a new revision of the rate sheet. A missing
// effective_date defaults to today.
func (h *RateSheetHandler) PutRatesHandler(w http.ResponseWriter, r *http.Request) {
	var sheet model.RateSheet
	if err := json.NewDecoder(r.Body).Decode(&sheet); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := sheet.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if sheet.EffectiveDate == "" {
		sheet.EffectiveDate = h.Now().Format(time.DateOnly)
	}

	if err := h.Repo.Save(r.Context(), sheet); err != nil {
		http.Error(w, "failed to save rate sheet: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("Rate sheet for %s saved", sheet.EffectiveDate)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sheet)
}
