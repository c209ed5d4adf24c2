// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for the signed-in user's account endpoints,
// mounted under /api/user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
		pr.Get("/profile", h.ServeMe)
		pr.Put("/profile", h.ServeUpdateProfile)
	})

	return r
}
