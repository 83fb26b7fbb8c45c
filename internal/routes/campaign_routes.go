// internal/routes/campaign_routes.go
package routes

import (
	"github.com/go-chi/chi/v5"

	"campaignhub/internal/handlers"
	"campaignhub/internal/interfaces"
)

func RegisterCampaignRoutes(router chi.Router, store interfaces.CampaignStore, allowLegacyIDs bool) {
	campaignHandler := handlers.NewCampaignHandler(store, allowLegacyIDs)

	router.Route("/campaigns", func(r chi.Router) {
		r.Get("/", campaignHandler.ListCampaigns)
		r.Post("/", campaignHandler.CreateCampaign)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", campaignHandler.GetCampaign)
			r.Patch("/", campaignHandler.UpdateCampaign)
			r.Patch("/status", campaignHandler.UpdateCampaignStatus)
			r.Get("/stats", campaignHandler.GetCampaignStats)
			r.Patch("/stats", campaignHandler.UpdateCampaignStats)
		})
	})
}
