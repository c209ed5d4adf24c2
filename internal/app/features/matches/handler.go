// internal/app/features/matches/handler.go
// The matches feature runs the scorer over every other profile-complete
// user and returns the ranked, explained results.
package matches

import (
	"net/http"
	"sort"

	"github.com/dalemusser/studymatch/internal/app/match"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/app/system/httpjson"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// matchedUser is one ranked result. The candidate's profile rides along
// with the score and its explanation.
type matchedUser struct {
	User        models.User       `json:"user"`
	Score       float64           `json:"score"`
	Explanation match.Explanation `json:"explanation"`
}

type searchResponse struct {
	Matches []matchedUser `json:"matches"`
	Total   int           `json:"total"`
}

// ServeSearch handles POST /api/match/search. The query body is the
// caller's ad hoc criteria, not necessarily their own profile; every
// field is optional.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var q match.Query
	if err := httpjson.Decode(r, &q); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	candidates, err := h.Users.ListActiveExcept(r.Context(), callerID)
	if err != nil {
		httpjson.Internal(w, h.Log, "matches: list candidates", err)
		return
	}

	matches := make([]matchedUser, 0, len(candidates))
	for i := range candidates {
		res := match.Score(q, &candidates[i])
		if res.Score <= 0 {
			continue
		}
		matches = append(matches, matchedUser{
			User:        candidates[i],
			Score:       res.Score,
			Explanation: res.Explanation,
		})
	}

	// Stable so equal scores keep the store's insertion order and repeated
	// searches return identical rankings.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	httpjson.Write(w, http.StatusOK, searchResponse{
		Matches: matches,
		Total:   len(matches),
	})
}
