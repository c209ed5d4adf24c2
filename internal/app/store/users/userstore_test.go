package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/dalemusser/studymatch/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		GoogleID: "g-123",
		Name:     "Ada Lovelace",
		Email:    "Ada@Example.COM",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.EmailCI != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", created.EmailCI)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.IsProfileComplete {
		t.Error("new user should start with an incomplete profile")
	}
}

func TestStore_FindOrCreateByGoogleID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.FindOrCreateByGoogleID(ctx, "g-456", "Ada", "ada@example.com", "")
	if err != nil {
		t.Fatalf("FindOrCreateByGoogleID (create) failed: %v", err)
	}

	second, err := store.FindOrCreateByGoogleID(ctx, "g-456", "Different Name", "other@example.com", "")
	if err != nil {
		t.Fatalf("FindOrCreateByGoogleID (find) failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same user on repeat sign-in, got %v and %v", first.ID, second.ID)
	}
	if second.Name != "Ada" {
		t.Errorf("existing record should not be overwritten, got name %q", second.Name)
	}
}

func TestStore_UpdateProfile_CompletenessFlag(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Ada", "ada@example.com")

	// Partial update: rating only. Still incomplete.
	rating := 1500
	updated, err := store.UpdateProfile(ctx, user.ID, userstore.ProfileUpdate{DSARating: &rating})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.IsProfileComplete {
		t.Error("profile should still be incomplete with only a rating")
	}
	if updated.DSARating == nil || *updated.DSARating != 1500 {
		t.Errorf("expected rating 1500, got %v", updated.DSARating)
	}

	// Fill in the rest. Now complete.
	stack := "backend"
	updated, err = store.UpdateProfile(ctx, user.ID, userstore.ProfileUpdate{
		Skills:    []string{"go", "  docker  ", ""},
		TechStack: &stack,
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if !updated.IsProfileComplete {
		t.Error("profile should be complete with rating, skills, and stack")
	}
	if len(updated.Skills) != 2 {
		t.Errorf("expected empty skill entries dropped, got %v", updated.Skills)
	}
	if updated.Skills[1] != "docker" {
		t.Errorf("expected trimmed skill, got %q", updated.Skills[1])
	}
}

func TestStore_UpdateProfile_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rating := 1200
	_, err := store.UpdateProfile(ctx, primitive.NewObjectID(), userstore.ProfileUpdate{DSARating: &rating})
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListActiveExcept(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	target := fixtures.CreateCompleteUser(ctx, "Target", "t@example.com", 1500, []string{"go"}, "backend")
	fixtures.CreateCompleteUser(ctx, "Peer", "p@example.com", 1400, []string{"go"}, "backend")
	fixtures.CreateUser(ctx, "Incomplete", "i@example.com")

	users, err := store.ListActiveExcept(ctx, target.ID)
	if err != nil {
		t.Fatalf("ListActiveExcept failed: %v", err)
	}

	if len(users) != 1 {
		t.Fatalf("expected 1 user (target and incomplete excluded), got %d", len(users))
	}
	if users[0].Name != "Peer" {
		t.Errorf("expected Peer, got %q", users[0].Name)
	}
}

func TestStore_ListCompleteIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateCompleteUser(ctx, "A", "a@example.com", 1500, []string{"go"}, "backend")
	fixtures.CreateUser(ctx, "B", "b@example.com")

	ids, err := store.ListCompleteIDs(ctx)
	if err != nil {
		t.Fatalf("ListCompleteIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != a.ID {
		t.Errorf("expected [%v], got %v", a.ID, ids)
	}
}
