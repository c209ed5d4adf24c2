// internal/app/features/stats/handler.go
// The stats feature exposes the caller's population statistics: match
// percentage, skill gaps, and group eligibility.
package stats

import (
	"errors"
	"net/http"

	"github.com/dalemusser/studymatch/internal/app/match"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users  *userstore.Store
	Groups *groupstore.Store
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, groups *groupstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Groups: groups, Log: logger}
}

// ServeStats handles GET /api/stats. An incomplete profile still gets an
// answer; with no declared skills everything comes back zero.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "stats: load user", err)
		return
	}

	others, err := h.Users.ListActiveExcept(r.Context(), id)
	if err != nil {
		httpjson.Internal(w, h.Log, "stats: list users", err)
		return
	}

	open, err := h.Groups.ListOpen(r.Context())
	if err != nil {
		httpjson.Internal(w, h.Log, "stats: list groups", err)
		return
	}

	httpjson.Write(w, http.StatusOK, match.Analyze(user, others, open))
}
