// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for group endpoints, mounted under /api/groups.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Post("/", h.ServeCreate)

		pr.Route("/{groupID}", func(gr chi.Router) {
			gr.Get("/", h.ServeGet)
			gr.Delete("/", h.ServeDelete)
			gr.Post("/join", h.ServeJoin)
			gr.Post("/leave", h.ServeLeave)
			gr.Patch("/lock", h.ServeLock)
		})
	})

	return r
}
