// internal/app/store/insights/insightstore.go
package insightstore

import (
	"context"
	"errors"

	"github.com/dalemusser/studymatch/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrConflict is returned when a concurrent upsert inserted the insight
// for the same user first (unique index on user_id). Callers resolve it
// by re-reading the winner's record; it never surfaces to API clients.
var ErrConflict = errors.New("insight already inserted for user")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("insights")}
}

// Get returns the stored insight for a user, or mongo.ErrNoDocuments.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (*models.Insight, error) {
	var ins models.Insight
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&ins); err != nil {
		return nil, err
	}
	return &ins, nil
}

// Upsert writes the user's current insight, overwriting any prior one.
// No history is kept. Two concurrent upserts for a user who has no stored
// insight both take the insert path; the unique index rejects the loser
// with a duplicate key, surfaced as ErrConflict.
func (s *Store) Upsert(ctx context.Context, ins models.Insight) (models.Insight, error) {
	// Leave _id out of the replacement (omitempty on the zero ObjectID):
	// a replace must not change an existing document's _id.
	ins.ID = primitive.NilObjectID
	_, err := s.c.ReplaceOne(ctx,
		bson.M{"user_id": ins.UserID},
		ins,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Insight{}, ErrConflict
		}
		return models.Insight{}, err
	}
	return ins, nil
}
