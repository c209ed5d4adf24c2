package stats_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/studymatch/internal/app/features/stats"
	"github.com/dalemusser/studymatch/internal/app/match"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/dalemusser/studymatch/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*stats.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := stats.NewHandler(userstore.New(db), groupstore.New(db), zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func getStats(t *testing.T, handler *stats.Handler, caller models.User) match.Stats {
	t.Helper()
	req := testutil.NewAuthenticatedRequest("GET", "/api/stats", nil, caller)
	rec := httptest.NewRecorder()
	handler.ServeStats(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var s match.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	return s
}

func TestServeStats(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	caller := f.CreateCompleteUser(ctx, "Ada", "ada@example.com", 1500, []string{"go"}, "backend")
	// Shares a skill with the caller.
	peer := f.CreateCompleteUser(ctx, "Peer", "peer@example.com", 1400, []string{"go", "rust"}, "frontend")
	// No overlap at all.
	f.CreateCompleteUser(ctx, "Other", "other@example.com", 1400, []string{"cobol"}, "embedded")

	f.CreateGroup(ctx, "Anyone Welcome", peer.ID, 5)
	min := 3000
	f.CreateGroupWithCriteria(ctx, "Elites Only", peer.ID, nil, "", &min, nil)

	s := getStats(t, handler, caller)

	if s.MatchCount != 1 {
		t.Errorf("matchCount = %d, want 1", s.MatchCount)
	}
	if s.MatchPercentage != 50 {
		t.Errorf("matchPercentage = %d, want 50", s.MatchPercentage)
	}
	if s.TotalGroups != 2 || s.EligibleGroups != 1 {
		t.Errorf("groups = %d/%d eligible, want 1/2", s.EligibleGroups, s.TotalGroups)
	}
	// rust is missing from the caller's profile and held by a peer.
	foundRust := false
	for _, gap := range s.SkillGaps {
		if gap == "rust" {
			foundRust = true
		}
	}
	if !foundRust {
		t.Errorf("skillGaps = %v, want rust included", s.SkillGaps)
	}
}

func TestServeStats_IncompleteProfile(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	caller := f.CreateUser(ctx, "Ada", "ada@example.com")
	other := f.CreateCompleteUser(ctx, "Other", "other@example.com", 1400, []string{"go"}, "backend")
	f.CreateGroup(ctx, "Open To All", other.ID, 5)

	s := getStats(t, handler, caller)

	if s.MatchCount != 0 {
		t.Errorf("matchCount = %d, want 0 for an empty profile", s.MatchCount)
	}
	// A group with no filters is still eligible.
	if s.EligibleGroups != 1 {
		t.Errorf("eligibleGroups = %d, want 1", s.EligibleGroups)
	}
}

func TestServeStats_Unauthenticated(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeStats(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
