package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/studymatch/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db     *mongo.Database
	t      *testing.T
	msgSeq int
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with an incomplete profile.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		GoogleID:  fmt.Sprintf("google-%s", primitive.NewObjectID().Hex()),
		Name:      name,
		Email:     email,
		EmailCI:   text.Fold(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateCompleteUser creates a test user with a complete profile.
func (f *Fixtures) CreateCompleteUser(ctx context.Context, name, email string, rating int, skills []string, techStack string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:                primitive.NewObjectID(),
		GoogleID:          fmt.Sprintf("google-%s", primitive.NewObjectID().Hex()),
		Name:              name,
		Email:             email,
		EmailCI:           text.Fold(email),
		DSARating:         &rating,
		Skills:            skills,
		TechStack:         techStack,
		IsProfileComplete: true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create complete test user: %v", err)
	}

	return user
}

// CreateGroup creates an open test group with the given creator as its
// first member.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID, capacity int) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: "Test group description",
		CreatorID:   creatorID,
		MemberIDs:   []primitive.ObjectID{creatorID},
		Capacity:    capacity,
		Status:      models.GroupStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

// CreateGroupWithCriteria creates an open test group with matching criteria.
func (f *Fixtures) CreateGroupWithCriteria(ctx context.Context, name string, creatorID primitive.ObjectID, skills []string, techStack string, ratingMin, ratingMax *int) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:             primitive.NewObjectID(),
		Name:           name,
		Description:    "Test group description",
		CreatorID:      creatorID,
		MemberIDs:      []primitive.ObjectID{creatorID},
		RequiredSkills: skills,
		TechStack:      techStack,
		DSARatingMin:   ratingMin,
		DSARatingMax:   ratingMax,
		Capacity:       10,
		Status:         models.GroupStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

// CreateRoom creates a private test chat room with the given members.
func (f *Fixtures) CreateRoom(ctx context.Context, name string, groupID *primitive.ObjectID, memberIDs ...primitive.ObjectID) models.ChatRoom {
	f.t.Helper()

	now := time.Now().UTC()
	room := models.ChatRoom{
		ID:        primitive.NewObjectID(),
		Name:      name,
		GroupID:   groupID,
		MemberIDs: memberIDs,
		IsPrivate: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("chat_rooms").InsertOne(ctx, room)
	if err != nil {
		f.t.Fatalf("failed to create test chat room: %v", err)
	}

	return room
}

// CreateMessage creates a test text message in a room. Timestamps are
// spaced a millisecond apart so creation order survives the store's
// created_at sort.
func (f *Fixtures) CreateMessage(ctx context.Context, roomID, senderID primitive.ObjectID, content string) models.Message {
	f.t.Helper()

	f.msgSeq++
	msg := models.Message{
		ID:        primitive.NewObjectID(),
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		Type:      models.MessageTypeText,
		CreatedAt: time.Now().UTC().Add(time.Duration(f.msgSeq) * time.Millisecond),
	}

	_, err := f.db.Collection("messages").InsertOne(ctx, msg)
	if err != nil {
		f.t.Fatalf("failed to create test message: %v", err)
	}

	return msg
}

// CreateInsight creates a stored insight for a user expiring at the given
// time.
func (f *Fixtures) CreateInsight(ctx context.Context, userID primitive.ObjectID, headline string, expiresAt time.Time) models.Insight {
	f.t.Helper()

	ins := models.Insight{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Primary: models.PrimaryInsight{
			Headline:    headline,
			Explanation: "Test insight explanation",
			Category:    models.InsightProgress,
		},
		GeneratedAt: expiresAt.Add(-models.InsightValidity),
		ExpiresAt:   expiresAt,
	}

	_, err := f.db.Collection("insights").InsertOne(ctx, ins)
	if err != nil {
		f.t.Fatalf("failed to create test insight: %v", err)
	}

	return ins
}
