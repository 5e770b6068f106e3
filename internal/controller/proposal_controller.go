package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/proposal-backend/internal/errors"
	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/proposal"
	"github.com/unclebandit/proposal-backend/internal/repository"
)

type ProposalController struct {
	Rates repository.RateSheetRepositoryInterface
}

func (c *ProposalController) Routes(r chi.Router) {
	r.Post("/proposals", c.GenerateProposals)
}

// GenerateProposals prices the borrower against the latest rate sheet. With
// no sheet stored yet the operator defaults are used.
func (c *ProposalController) GenerateProposals(w http.ResponseWriter, r *http.Request) {
	var facts model.BorrowerFacts
	if err := json.NewDecoder(r.Body).Decode(&facts); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := facts.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rates := model.DefaultRateSheet()
	sheet, err := c.Rates.Latest(r.Context())
	switch {
	case err == nil:
		rates = *sheet
	case errors.Is(err, appErrors.ErrRateSheetNotFound):
		log.Println("no rate sheet stored, using defaults")
	default:
		writeError(w, err)
		return
	}

	set := proposal.NewEngine(facts, rates).GenerateAll()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rate_sheet_date": rates.EffectiveDate,
		"proposals":       set,
		"comparison":      proposal.Compare(set),
	})
}
