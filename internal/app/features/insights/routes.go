// internal/app/features/insights/routes.go
package insights

import (
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for daily insights, mounted under /api/insight.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeToday)
		pr.Post("/regenerate", h.ServeRegenerate)
	})

	return r
}
