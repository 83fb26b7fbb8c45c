package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "campaignhub/docs"
)

// RegisterSwaggerRoutes mounts the API explorer under /swagger. The UI reads
// the registered document from /swagger/doc.json.
func RegisterSwaggerRoutes(r chi.Router) {
	r.Route("/swagger", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/swagger/index.html", http.StatusFound)
		})
		r.Get("/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.DocExpansion("list"),
			httpSwagger.PersistAuthorization(true),
			httpSwagger.UIConfig(map[string]string{
				"defaultModelsExpandDepth": "-1",
			}),
		))
	})
}
