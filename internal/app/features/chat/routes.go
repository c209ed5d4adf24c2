// internal/app/features/chat/routes.go
package chat

import (
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router for chat endpoints, mounted under /api/chat.
// The websocket route authenticates with a minted token instead of the
// session, so it sits outside the RequireSignedIn group.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/rooms", h.ServeListRooms)
		pr.Get("/rooms/group/{groupID}", h.ServeGroupRoom)
		pr.Get("/rooms/{roomID}", h.ServeRoom)
		pr.Get("/rooms/{roomID}/messages", h.ServeHistory)
		pr.Post("/rooms/{roomID}/messages", h.ServeSend)
		pr.Get("/ws-token", h.ServeToken)
	})

	r.Get("/rooms/{roomID}/ws", h.ServeWS)

	return r
}
