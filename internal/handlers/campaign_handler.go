// internal/handlers/campaign_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/logger"
	"campaignhub/internal/models"
	"campaignhub/internal/stats"
	"campaignhub/internal/validation"
)

const (
	msgCampaignCreated = "Campaign created successfully"
	msgStatusUpdated   = "Campaign status updated successfully"
	msgStatsUpdated    = "Campaign stats updated successfully"
)

type CampaignHandler struct {
	store          interfaces.CampaignStore
	allowLegacyIDs bool
}

// NewCampaignHandler returns the campaign API. When allowLegacyIDs is false,
// ids that are not shaped like native keys are rejected before any lookup.
func NewCampaignHandler(store interfaces.CampaignStore, allowLegacyIDs bool) *CampaignHandler {
	return &CampaignHandler{
		store:          store,
		allowLegacyIDs: allowLegacyIDs,
	}
}

type campaignWithStats struct {
	Campaign *models.Campaign     `json:"campaign"`
	Stats    models.CampaignStats `json:"stats"`
}

// @Tags Campaigns
// @Summary Create campaign
// @Accept json
// @Produce json
// @Param campaign body models.CampaignInput true "Campaign"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in models.CampaignInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.Validate(in); len(errs) > 0 {
		logger.FromContext(r.Context()).Debug("campaign rejected", slog.String("errors", errs.Error()))
		writeJSONValidationErrors(w, errs)
		return
	}

	// Both dates were checked by Validate.
	start, _ := validation.ParseDate(in.StartDate)
	end, _ := validation.ParseDate(in.EndDate)

	campaign := &models.Campaign{
		Name:       strings.TrimSpace(in.Name),
		Advertiser: strings.TrimSpace(in.Advertiser),
		Budget:     *in.Budget,
		StartDate:  start,
		EndDate:    end,
		Status:     models.CampaignStatus(in.Status),
	}
	if in.Impressions != nil {
		campaign.Impressions = *in.Impressions
	}
	if in.Clicks != nil {
		campaign.Clicks = *in.Clicks
	}

	if err := h.store.Create(r.Context(), campaign); err != nil {
		h.writeStoreError(w, r, err, "Failed to create campaign")
		return
	}

	writeJSONSuccess(w, http.StatusCreated, campaign, msgCampaignCreated)
}

// @Tags Campaigns
// @Summary List campaigns
// @Produce json
// @Param page query int false "Page number, from 1"
// @Param limit query int false "Page size, 1 to 100"
// @Param status query string false "Exact status"
// @Param advertiser query string false "Advertiser substring"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := max(1, queryInt(q.Get("page"), 1))
	limit := min(interfaces.MaxPageLimit, max(1, queryInt(q.Get("limit"), interfaces.DefaultPageLimit)))

	filter := interfaces.CampaignFilter{
		Advertiser: strings.TrimSpace(q.Get("advertiser")),
		Offset:     (page - 1) * limit,
		Limit:      limit,
	}
	if status := q.Get("status"); status != "" {
		if errs := validation.ValidateStatus(status); len(errs) > 0 {
			writeJSONValidationErrors(w, errs)
			return
		}
		filter.Status = models.CampaignStatus(status)
	}

	result, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to fetch campaigns")
		return
	}

	writeJSONSuccess(w, http.StatusOK, result, "")
}

// @Tags Campaigns
// @Summary Get campaign
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := h.campaignID(r)
	if err != nil {
		h.writeStoreError(w, r, err, "")
		return
	}

	campaign, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to fetch campaign")
		return
	}

	writeJSONSuccess(w, http.StatusOK, campaign, "")
}

// @Tags Campaigns
// @Summary Get campaign with derived metrics
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/stats [get]
func (h *CampaignHandler) GetCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, err := h.campaignID(r)
	if err != nil {
		h.writeStoreError(w, r, err, "")
		return
	}

	campaign, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to fetch stats")
		return
	}

	writeJSONSuccess(w, http.StatusOK, campaignWithStats{
		Campaign: campaign,
		Stats:    stats.Compute(campaign),
	}, "")
}

// @Tags Campaigns
// @Summary Update campaign status or counters
// @Description Carries either a status or impressions/clicks, never both.
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param update body models.UpdateCampaignRequest true "Update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [patch]
func (h *CampaignHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := h.campaignID(r)
	if err != nil {
		h.writeStoreError(w, r, err, "")
		return
	}

	var req models.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.HasStatus() && req.HasStats():
		writeJSONError(w, http.StatusBadRequest, "Cannot update status and stats in the same request")
	case req.HasStatus():
		h.applyStatus(w, r, id, *req.Status)
	case req.HasStats():
		h.applyStats(w, r, id, models.UpdateStatsRequest{Impressions: req.Impressions, Clicks: req.Clicks})
	default:
		writeJSONError(w, http.StatusBadRequest, "No fields to update")
	}
}

// @Tags Campaigns
// @Summary Change campaign status
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param status body models.UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/status [patch]
func (h *CampaignHandler) UpdateCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, err := h.campaignID(r)
	if err != nil {
		h.writeStoreError(w, r, err, "")
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.applyStatus(w, r, id, req.Status)
}

// @Tags Campaigns
// @Summary Update campaign counters
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param stats body models.UpdateStatsRequest true "Impressions and clicks"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/stats [patch]
func (h *CampaignHandler) UpdateCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, err := h.campaignID(r)
	if err != nil {
		h.writeStoreError(w, r, err, "")
		return
	}

	var req models.UpdateStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Impressions == nil && req.Clicks == nil {
		writeJSONError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	h.applyStats(w, r, id, req)
}

func (h *CampaignHandler) applyStatus(w http.ResponseWriter, r *http.Request, id, status string) {
	if errs := validation.ValidateStatus(status); len(errs) > 0 {
		writeJSONValidationErrors(w, errs)
		return
	}
	next := models.CampaignStatus(status)

	current, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to update campaign")
		return
	}
	if !current.Status.CanTransitionTo(next) {
		writeJSONError(w, http.StatusConflict, "Campaign is finished and cannot change status")
		return
	}

	updated, err := h.store.UpdateStatus(r.Context(), id, next)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to update campaign")
		return
	}

	writeJSONSuccess(w, http.StatusOK, updated, msgStatusUpdated)
}

// applyStats fills a missing counter from the stored record, checks the
// merged pair and writes it.
func (h *CampaignHandler) applyStats(w http.ResponseWriter, r *http.Request, id string, req models.UpdateStatsRequest) {
	if errs := validation.ValidateStats(req); len(errs) > 0 {
		writeJSONValidationErrors(w, errs)
		return
	}

	current, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to update campaign")
		return
	}

	impressions, clicks := current.Impressions, current.Clicks
	if req.Impressions != nil {
		impressions = *req.Impressions
	}
	if req.Clicks != nil {
		clicks = *req.Clicks
	}

	merged := models.UpdateStatsRequest{Impressions: &impressions, Clicks: &clicks}
	if errs := validation.ValidateStats(merged); len(errs) > 0 {
		writeJSONValidationErrors(w, errs)
		return
	}

	updated, err := h.store.UpdateStats(r.Context(), id, impressions, clicks)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to update campaign")
		return
	}

	writeJSONSuccess(w, http.StatusOK, updated, msgStatsUpdated)
}

func (h *CampaignHandler) campaignID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		return "", interfaces.ErrInvalidCampaignID
	}
	if !h.allowLegacyIDs && !validation.IsValidID(id) {
		return "", interfaces.ErrInvalidCampaignID
	}
	return id, nil
}

// writeStoreError maps err onto a response. Persistence faults are logged in
// full and answered with failure only.
func (h *CampaignHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var verrs validation.Errors
	switch {
	case errors.Is(err, interfaces.ErrInvalidCampaignID):
		writeJSONError(w, http.StatusBadRequest, "Invalid campaign ID")
	case errors.Is(err, interfaces.ErrCampaignNotFound):
		writeJSONError(w, http.StatusNotFound, "Campaign not found")
	case errors.As(err, &verrs):
		writeJSONValidationErrors(w, verrs)
	default:
		logger.FromContext(r.Context()).Error(failure,
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeJSONError(w, http.StatusInternalServerError, failure)
	}
}

func queryInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
