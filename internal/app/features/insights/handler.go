// internal/app/features/insights/handler.go
// The insights feature serves the user's daily insight, generating one
// on demand when none is stored or the stored one has expired.
package insights

import (
	"errors"
	"net/http"

	"github.com/dalemusser/studymatch/internal/app/insight"
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Insights *insight.Service
	Log      *zap.Logger
}

func NewHandler(insights *insight.Service, logger *zap.Logger) *Handler {
	return &Handler{Insights: insights, Log: logger}
}

// ServeToday handles GET /api/insight.
func (h *Handler) ServeToday(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ins, err := h.Insights.GetToday(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "insights: get today", err)
		return
	}
	httpjson.Write(w, http.StatusOK, ins)
}

// ServeRegenerate handles POST /api/insight/regenerate. It bypasses the
// expiry check and forces a fresh insight.
func (h *Handler) ServeRegenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ins, err := h.Insights.Generate(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "insights: regenerate", err)
		return
	}
	httpjson.Write(w, http.StatusOK, ins)
}
