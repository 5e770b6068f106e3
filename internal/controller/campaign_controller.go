// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/proposal-backend/internal/model"
	"github.com/unclebandit/proposal-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

// Routes mounts the campaign endpoints under r.
func (c *CampaignController) Routes(r chi.Router) {
	r.Post("/campaigns", c.CreateCampaign)
	r.Get("/campaigns/{leadID}", c.GetCampaign)
	r.Patch("/campaigns/{leadID}/status", c.SetStatus)
	r.Post("/campaigns/{leadID}/respond", c.Respond)
	r.Get("/campaigns/{leadID}/due", c.PendingDue)
	r.Post("/campaigns/{leadID}/touchpoints/{index}/sent", c.MarkSent)
	r.Get("/campaigns/{leadID}/touchpoints/{index}/message", c.RenderTouchpoint)
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LeadID       string              `json:"lead_id"`
		CampaignType string              `json:"campaign_type"`
		Lead         model.BorrowerFacts `json:"lead"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.LeadID == "" {
		http.Error(w, "lead_id is required", http.StatusBadRequest)
		return
	}
	if err := body.Lead.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(r.Context(), body.LeadID, body.CampaignType, body.Lead)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, campaign)
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := c.CampaignService.GetCampaign(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) SetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status model.CampaignStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.SetStatus(r.Context(), chi.URLParam(r, "leadID"), body.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) Respond(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartFollowUp bool `json:"start_follow_up"`
	}
	// an empty body just stops the campaign
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.Respond(r.Context(), chi.URLParam(r, "leadID"), body.StartFollowUp)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, campaign)
}

// PendingDue lists due touchpoints. An optional ?now=RFC3339 overrides the
// current time.
func (c *CampaignController) PendingDue(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	if raw := r.URL.Query().Get("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "invalid now, expected RFC3339", http.StatusBadRequest)
			return
		}
		now = parsed
	}

	due, err := c.CampaignService.PendingDue(r.Context(), chi.URLParam(r, "leadID"), now)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": due,
	})
}

func (c *CampaignController) MarkSent(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid touchpoint index", http.StatusBadRequest)
		return
	}

	tp, err := c.CampaignService.MarkSent(r.Context(), chi.URLParam(r, "leadID"), index)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tp)
}

func (c *CampaignController) RenderTouchpoint(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid touchpoint index", http.StatusBadRequest)
		return
	}

	msg, err := c.CampaignService.RenderTouchpoint(r.Context(), chi.URLParam(r, "leadID"), index)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, msg)
}
