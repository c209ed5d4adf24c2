// internal/app/store/chatrooms/roomstore.go
package roomstore

import (
	"context"
	"time"

	"github.com/dalemusser/studymatch/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chat_rooms")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByGroup returns the room backing a group, or mongo.ErrNoDocuments.
func (s *Store) GetByGroup(ctx context.Context, groupID primitive.ObjectID) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := s.c.FindOne(ctx, bson.M{"group_id": groupID}).Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a new room.
func (s *Store) Create(ctx context.Context, room models.ChatRoom) (models.ChatRoom, error) {
	now := time.Now().UTC()
	room.ID = primitive.NewObjectID()
	room.CreatedAt = now
	room.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, room); err != nil {
		return models.ChatRoom{}, err
	}
	return room, nil
}

// GetOrCreateForGroup returns the room backing a group, creating it on
// first access. The member list mirrors the group's current members on
// every call so joins and leaves propagate without a separate sync step.
func (s *Store) GetOrCreateForGroup(ctx context.Context, g *models.Group) (*models.ChatRoom, error) {
	room, err := s.GetByGroup(ctx, g.ID)
	if err == nil {
		return s.setMembers(ctx, room, g.MemberIDs)
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	created, err := s.Create(ctx, models.ChatRoom{
		Name:      g.Name,
		GroupID:   &g.ID,
		MemberIDs: g.MemberIDs,
		IsPrivate: true,
	})
	if err != nil {
		// The partial unique index on group_id rejects a concurrent
		// first-access insert; re-read the winner's room.
		if wafflemongo.IsDup(err) {
			return s.GetByGroup(ctx, g.ID)
		}
		return nil, err
	}
	return &created, nil
}

func (s *Store) setMembers(ctx context.Context, room *models.ChatRoom, memberIDs []primitive.ObjectID) (*models.ChatRoom, error) {
	if sameMembers(room.MemberIDs, memberIDs) {
		return room, nil
	}
	room.MemberIDs = memberIDs
	_, err := s.c.UpdateByID(ctx, room.ID, bson.M{"$set": bson.M{
		"member_ids": memberIDs,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return nil, err
	}
	return room, nil
}

func sameMembers(a, b []primitive.ObjectID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ListForUser returns every room the user belongs to, most recently
// active first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.ChatRoom, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"member_ids": userID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rooms []models.ChatRoom
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// Touch bumps the room's updated_at so it sorts to the top of the user's
// room list after new activity.
func (s *Store) Touch(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}})
	return err
}
