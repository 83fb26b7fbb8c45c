// internal/routes/routes.go
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"campaignhub/internal/config"
	"campaignhub/internal/handlers"
	"campaignhub/internal/interfaces"
	appmw "campaignhub/internal/middleware"
)

func SetupRoutes(store interfaces.CampaignStore, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(appmw.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", appmw.RequestIDHeader},
		ExposedHeaders:   []string{appmw.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	base := handlers.NewBaseHandler(store)
	r.Get("/", base.Root)
	r.Get("/health", base.Health)

	RegisterSwaggerRoutes(r)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Auth.JWTSecret != "" {
			r.Use(appmw.JWTAuth(cfg.Auth.JWTSecret))
		}
		RegisterCampaignRoutes(r, store, cfg.Store.LegacyIDs)
	})

	return r
}
