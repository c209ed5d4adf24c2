// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	Users  *userstore.Store
	Log    *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, the user
// store for population counts, and a logger.
func NewHandler(client *mongo.Client, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		Users:  users,
		Log:    logger,
	}
}

// userCounts reports population size alongside liveness.
type userCounts struct {
	Total    int64 `json:"total"`
	Complete int64 `json:"complete"`
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string      `json:"status"`
	Database string      `json:"database"`
	Users    *userCounts `json:"users,omitempty"`
	Message  string      `json:"message,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "users":{"total":N,"complete":M} }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Count failures degrade the payload, not the status; liveness is
	// already established by the ping.
	total, err := h.Users.CountAll(ctx)
	if err != nil {
		h.Log.Warn("health-check: user count failed", zap.Error(err))
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	complete, err := h.Users.CountComplete(ctx)
	if err != nil {
		h.Log.Warn("health-check: complete-user count failed", zap.Error(err))
		_ = json.NewEncoder(w).Encode(resp)
		return
	}
	resp.Users = &userCounts{Total: total, Complete: complete}

	_ = json.NewEncoder(w).Encode(resp)
}
