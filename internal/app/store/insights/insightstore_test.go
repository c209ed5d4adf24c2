package insightstore_test

import (
	"testing"
	"time"

	insightstore "github.com/dalemusser/studymatch/internal/app/store/insights"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/dalemusser/studymatch/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Get_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := insightstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Get(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Upsert_InsertThenReplace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := insightstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	now := time.Now().UTC()

	first := models.Insight{
		UserID:      userID,
		Primary:     models.PrimaryInsight{Headline: "first", Category: models.InsightProgress},
		GeneratedAt: now,
		ExpiresAt:   now.Add(models.InsightValidity),
	}
	if _, err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert (insert) failed: %v", err)
	}

	second := first
	second.Primary.Headline = "second"
	if _, err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert (replace) failed: %v", err)
	}

	got, err := store.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Primary.Headline != "second" {
		t.Errorf("expected replacement, got %q", got.Primary.Headline)
	}

	// One document per user, enforced by the unique index.
	n, err := db.Collection("insights").CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 document, got %d", n)
	}
}

func TestInsight_Valid(t *testing.T) {
	now := time.Now()
	ins := models.Insight{ExpiresAt: now.Add(time.Hour)}
	if !ins.Valid(now) {
		t.Error("insight expiring in an hour should be valid")
	}

	// Expiry is strict: exactly-now is already expired.
	ins.ExpiresAt = now
	if ins.Valid(now) {
		t.Error("insight expiring exactly now should be invalid")
	}
}
