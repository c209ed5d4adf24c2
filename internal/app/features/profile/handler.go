// internal/app/features/profile/handler.go
// The profile feature serves the signed-in user's account and the
// self-reported matching attributes (DSA rating, skills, tech stack).
package profile

import (
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/app/system/httpjson"
	"github.com/dalemusser/studymatch/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	dsaRatingMin = 0
	dsaRatingMax = 3500
	maxSkills    = 20
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ServeMe handles GET /api/user/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "profile: load user", err)
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

// profileRequest is the partial-update body for PUT /api/user/profile.
// Absent fields are left untouched.
type profileRequest struct {
	DSARating *int     `json:"dsaRating"`
	Skills    []string `json:"skills"`
	TechStack *string  `json:"techStack"`
}

// ServeUpdateProfile handles PUT /api/user/profile.
func (h *Handler) ServeUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DSARating != nil && (*req.DSARating < dsaRatingMin || *req.DSARating > dsaRatingMax) {
		httpjson.Error(w, http.StatusBadRequest, "dsaRating out of range")
		return
	}
	if req.Skills != nil {
		req.Skills = normalize.Skills(req.Skills)
		if len(req.Skills) > maxSkills {
			httpjson.Error(w, http.StatusBadRequest, "too many skills")
			return
		}
	}
	if req.TechStack != nil {
		// Stored as entered; comparisons fold case at match time.
		stack := strings.TrimSpace(*req.TechStack)
		req.TechStack = &stack
	}

	user, err := h.Users.UpdateProfile(r.Context(), id, userstore.ProfileUpdate{
		DSARating: req.DSARating,
		Skills:    req.Skills,
		TechStack: req.TechStack,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.Internal(w, h.Log, "profile: update", err)
		return
	}

	h.Log.Info("profile updated",
		zap.String("user_id", id.Hex()),
		zap.Bool("complete", user.IsProfileComplete))

	httpjson.Write(w, http.StatusOK, user)
}
