// internal/handlers/base.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"campaignhub/internal/interfaces"
	"campaignhub/internal/logger"
)

const healthPingTimeout = 2 * time.Second

// BaseHandler serves the service-level endpoints that sit outside /api/v1.
type BaseHandler struct {
	Store interfaces.CampaignStore
}

func NewBaseHandler(store interfaces.CampaignStore) *BaseHandler {
	return &BaseHandler{Store: store}
}

type dbHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type healthResponse struct {
	Status string   `json:"status"`
	DB     dbHealth `json:"db"`
}

// @Tags System
// @Summary Service banner
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *BaseHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Campaign API is running"})
}

// @Tags System
// @Summary Liveness and store connectivity
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *BaseHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	if err := h.Store.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("store ping failed", slog.Any("error", err))
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status: "degraded",
			DB:     dbHealth{Status: "down", Error: "unreachable"},
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", DB: dbHealth{Status: "ok"}})
}
