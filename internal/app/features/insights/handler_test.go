package insights_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/studymatch/internal/app/features/insights"
	"github.com/dalemusser/studymatch/internal/app/insight"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	insightstore "github.com/dalemusser/studymatch/internal/app/store/insights"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/dalemusser/studymatch/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*insights.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	svc := insight.NewService(userstore.New(db), groupstore.New(db), insightstore.New(db), logger)
	return insights.NewHandler(svc, logger), testutil.NewFixtures(t, db)
}

func TestServeToday_ServesStoredInsight(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := f.CreateCompleteUser(ctx, "Ada", "ada@example.com", 1500, []string{"go"}, "backend")
	f.CreateInsight(ctx, user.ID, "stored headline", time.Now().Add(time.Hour))

	req := testutil.NewAuthenticatedRequest("GET", "/api/insight", nil, user)
	rec := httptest.NewRecorder()
	handler.ServeToday(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var ins models.Insight
	if err := json.Unmarshal(rec.Body.Bytes(), &ins); err != nil {
		t.Fatalf("failed to decode insight: %v", err)
	}
	if ins.Primary.Headline != "stored headline" {
		t.Errorf("headline = %q, want the stored one", ins.Primary.Headline)
	}
}

func TestServeToday_GeneratesWhenMissing(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := f.CreateUser(ctx, "Ada", "ada@example.com")

	req := testutil.NewAuthenticatedRequest("GET", "/api/insight", nil, user)
	rec := httptest.NewRecorder()
	handler.ServeToday(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var ins models.Insight
	if err := json.Unmarshal(rec.Body.Bytes(), &ins); err != nil {
		t.Fatalf("failed to decode insight: %v", err)
	}
	if ins.Primary.Headline != "Complete your profile to unlock insights" {
		t.Errorf("unexpected headline %q for an incomplete profile", ins.Primary.Headline)
	}

	// The generated insight is persisted for subsequent requests.
	store := insightstore.New(f.DB())
	if _, err := store.Get(ctx, user.ID); err != nil {
		t.Errorf("expected insight to be stored: %v", err)
	}
}

func TestServeRegenerate_ReplacesValidInsight(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := f.CreateCompleteUser(ctx, "Ada", "ada@example.com", 1500, []string{"go"}, "backend")
	f.CreateInsight(ctx, user.ID, "stale headline", time.Now().Add(time.Hour))

	req := testutil.NewAuthenticatedRequest("POST", "/api/insight/regenerate", nil, user)
	rec := httptest.NewRecorder()
	handler.ServeRegenerate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var ins models.Insight
	if err := json.Unmarshal(rec.Body.Bytes(), &ins); err != nil {
		t.Fatalf("failed to decode insight: %v", err)
	}
	if ins.Primary.Headline == "stale headline" {
		t.Error("regenerate should not serve the stored insight")
	}
}

func TestServeToday_UnknownUser(t *testing.T) {
	handler, f := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A session user that was since deleted from the database.
	ghost := f.CreateUser(ctx, "Ghost", "ghost@example.com")
	if _, err := f.DB().Collection("users").DeleteOne(ctx, bson.M{"_id": ghost.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest("GET", "/api/insight", nil, ghost)
	rec := httptest.NewRecorder()
	handler.ServeToday(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
