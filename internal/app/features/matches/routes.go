// internal/app/features/matches/routes.go
package matches

import (
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for match search, mounted under /api/match.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/search", h.ServeSearch)
	})

	return r
}
