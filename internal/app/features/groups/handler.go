// internal/app/features/groups/handler.go
// The groups feature covers the collaboration-group lifecycle: create,
// list, join with eligibility checks, leave, lock, and delete.
package groups

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/studymatch/internal/app/match"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/auth"
	"github.com/dalemusser/studymatch/internal/app/system/htmlsanitize"
	"github.com/dalemusser/studymatch/internal/app/system/httpjson"
	"github.com/dalemusser/studymatch/internal/app/system/normalize"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

type Handler struct {
	Groups *groupstore.Store
	Users  *userstore.Store
	Log    *zap.Logger
}

func NewHandler(groups *groupstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Groups: groups, Users: users, Log: logger}
}

// urlGroupID parses the {groupID} route parameter.
func urlGroupID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
}

// createRequest is the body for POST /api/groups.
type createRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	TechStack      string   `json:"techStack"`
	DSARatingMin   *int     `json:"dsaRatingMin"`
	DSARatingMax   *int     `json:"dsaRatingMax"`
	Capacity       int      `json:"capacity"`
}

// ServeCreate handles POST /api/groups.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > maxNameLen {
		httpjson.Error(w, http.StatusBadRequest, "group name is required")
		return
	}
	if len(req.Description) > maxDescriptionLen {
		httpjson.Error(w, http.StatusBadRequest, "description too long")
		return
	}
	if req.Capacity < models.GroupCapacityMin || req.Capacity > models.GroupCapacityMax {
		httpjson.Error(w, http.StatusBadRequest,
			fmt.Sprintf("capacity must be between %d and %d",
				models.GroupCapacityMin, models.GroupCapacityMax))
		return
	}
	if req.DSARatingMin != nil && req.DSARatingMax != nil && *req.DSARatingMin > *req.DSARatingMax {
		httpjson.Error(w, http.StatusBadRequest, "dsaRatingMin exceeds dsaRatingMax")
		return
	}

	group, err := h.Groups.Create(r.Context(), models.Group{
		Name:           req.Name,
		Description:    htmlsanitize.Text(req.Description),
		CreatorID:      callerID,
		RequiredSkills: req.RequiredSkills,
		TechStack:      strings.TrimSpace(req.TechStack),
		DSARatingMin:   req.DSARatingMin,
		DSARatingMax:   req.DSARatingMax,
		Capacity:       req.Capacity,
	})
	if err != nil {
		httpjson.Internal(w, h.Log, "groups: create", err)
		return
	}

	h.Log.Info("group created",
		zap.String("group_id", group.ID.Hex()),
		zap.String("creator_id", callerID.Hex()))

	httpjson.Write(w, http.StatusCreated, group)
}

// ServeList handles GET /api/groups. Optional query params: status,
// techStack, skill.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.List(r.Context(), groupstore.ListFilter{
		Status:    r.URL.Query().Get("status"),
		TechStack: r.URL.Query().Get("techStack"),
		Skill:     r.URL.Query().Get("skill"),
	})
	if err != nil {
		httpjson.Internal(w, h.Log, "groups: list", err)
		return
	}
	httpjson.Write(w, http.StatusOK, groups)
}

// ServeGet handles GET /api/groups/{groupID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlGroupID(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	group, err := h.Groups.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		httpjson.Internal(w, h.Log, "groups: get", err)
		return
	}
	httpjson.Write(w, http.StatusOK, group)
}

// ServeJoin handles POST /api/groups/{groupID}/join. The group's
// eligibility filters are enforced here with a specific reason so the
// client can tell the user what disqualified them.
func (h *Handler) ServeJoin(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := urlGroupID(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	group, err := h.Groups.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		httpjson.Internal(w, h.Log, "groups: join lookup", err)
		return
	}

	user, err := h.Users.GetByID(r.Context(), callerID)
	if err != nil {
		httpjson.Internal(w, h.Log, "groups: join load user", err)
		return
	}

	if !user.IsProfileComplete {
		httpjson.Error(w, http.StatusForbidden, "complete your profile before joining a group")
		return
	}

	if reason := eligibilityFailure(user, group); reason != "" {
		httpjson.Error(w, http.StatusForbidden, reason)
		return
	}

	updated, err := h.Groups.AddMember(r.Context(), id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, groupstore.ErrAlreadyMember):
			httpjson.Error(w, http.StatusConflict, "you are already a member of this group")
		case errors.Is(err, groupstore.ErrGroupFull):
			httpjson.Error(w, http.StatusConflict, "group is full")
		case errors.Is(err, groupstore.ErrGroupClosed):
			httpjson.Error(w, http.StatusConflict, "group is not open for joining")
		default:
			httpjson.Internal(w, h.Log, "groups: join", err)
		}
		return
	}

	h.Log.Info("user joined group",
		zap.String("group_id", id.Hex()),
		zap.String("user_id", callerID.Hex()),
		zap.String("status", updated.Status))

	httpjson.Write(w, http.StatusOK, updated)
}

// eligibilityFailure returns a human-readable reason the user cannot join,
// or "" when every declared filter passes. Each dimension is re-checked so
// the reason names the filter that actually failed.
func eligibilityFailure(u *models.User, g *models.Group) string {
	if match.EligibleForGroup(u, g) {
		return ""
	}
	if u.DSARating != nil {
		if g.DSARatingMin != nil && *u.DSARating < *g.DSARatingMin {
			return fmt.Sprintf("your DSA rating is below the group minimum of %d", *g.DSARatingMin)
		}
		if g.DSARatingMax != nil && *u.DSARating > *g.DSARatingMax {
			return fmt.Sprintf("your DSA rating is above the group maximum of %d", *g.DSARatingMax)
		}
	}
	if len(g.RequiredSkills) > 0 && !hasAnySkill(u.Skills, g.RequiredSkills) {
		return fmt.Sprintf("this group requires at least one of: %s",
			strings.Join(g.RequiredSkills, ", "))
	}
	return fmt.Sprintf("this group is for the %s tech stack", g.TechStack)
}

func hasAnySkill(have, want []string) bool {
	set := normalize.SkillSet(have)
	for _, s := range want {
		if _, ok := set[normalize.Skill(s)]; ok {
			return true
		}
	}
	return false
}

// ServeLeave handles POST /api/groups/{groupID}/leave.
func (h *Handler) ServeLeave(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := urlGroupID(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	updated, err := h.Groups.RemoveMember(r.Context(), id, callerID)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "group not found")
		case errors.Is(err, groupstore.ErrCreatorLeave):
			httpjson.Error(w, http.StatusConflict, "the creator cannot leave; delete the group instead")
		case errors.Is(err, groupstore.ErrNotMember):
			httpjson.Error(w, http.StatusConflict, "you are not a member of this group")
		default:
			httpjson.Internal(w, h.Log, "groups: leave", err)
		}
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}

// lockRequest is the body for PATCH /api/groups/{groupID}/lock.
type lockRequest struct {
	Locked bool `json:"locked"`
}

// ServeLock handles PATCH /api/groups/{groupID}/lock (creator only).
func (h *Handler) ServeLock(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := urlGroupID(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req lockRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Groups.SetLocked(r.Context(), id, callerID, req.Locked)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "group not found")
		case errors.Is(err, groupstore.ErrNotCreator):
			httpjson.Error(w, http.StatusForbidden, "only the group creator can lock the group")
		default:
			httpjson.Internal(w, h.Log, "groups: lock", err)
		}
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/groups/{groupID} (creator only).
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CurrentUserObjectID(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := urlGroupID(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	if err := h.Groups.Delete(r.Context(), id, callerID); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "group not found")
		case errors.Is(err, groupstore.ErrNotCreator):
			httpjson.Error(w, http.StatusForbidden, "only the group creator can delete the group")
		default:
			httpjson.Internal(w, h.Log, "groups: delete", err)
		}
		return
	}

	h.Log.Info("group deleted",
		zap.String("group_id", id.Hex()),
		zap.String("creator_id", callerID.Hex()))

	httpjson.Write(w, http.StatusOK, map[string]string{"message": "group deleted"})
}
