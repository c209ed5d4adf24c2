// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/studymatch/internal/app/system/normalize"
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
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments when the
// user does not exist; callers surface that as NotFound unchanged.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByGoogleID looks up a user by their Google account id.
func (s *Store) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"google_id": googleID}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user record, normally on first Google sign-in.
// The profile starts incomplete; skills, stack, and rating come later
// through profile updates.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.EmailCI = normalize.Email(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// FindOrCreateByGoogleID returns the existing user for a Google account or
// creates one. A concurrent first-login can race the insert; the unique
// index on google_id makes the loser's insert fail with a duplicate key,
// which is resolved by re-reading the winner's record.
func (s *Store) FindOrCreateByGoogleID(ctx context.Context, googleID, name, email, avatar string) (*models.User, error) {
	u, err := s.GetByGoogleID(ctx, googleID)
	if err == nil {
		return u, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	created, err := s.Create(ctx, models.User{
		GoogleID: googleID,
		Name:     name,
		Email:    email,
		Avatar:   avatar,
	})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return s.GetByGoogleID(ctx, googleID)
		}
		return nil, err
	}
	return &created, nil
}

// ProfileUpdate holds the self-reported matching attributes. Nil fields are
// left untouched, matching the partial-update semantics of the API.
type ProfileUpdate struct {
	DSARating *int
	Skills    []string
	TechStack *string
}

// UpdateProfile applies a partial profile update and recomputes the
// completeness flag from the resulting document. Returns the updated user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.DSARating != nil {
		set["dsa_rating"] = *upd.DSARating
	}
	if upd.Skills != nil {
		set["skills"] = normalize.Skills(upd.Skills)
	}
	if upd.TechStack != nil {
		set["tech_stack"] = *upd.TechStack
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, err
	}

	complete := u.DSARating != nil && len(u.Skills) > 0 && u.TechStack != ""
	if complete != u.IsProfileComplete {
		err = s.c.FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"is_profile_complete": complete}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&u)
		if err != nil {
			return nil, err
		}
	}
	return &u, nil
}

// ListActiveExcept returns every profile-complete user except the given
// one, in insertion order. This is the population snapshot the analyzer
// and the match search run over.
func (s *Store) ListActiveExcept(ctx context.Context, exclude primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"is_profile_complete": true,
		"_id":                 bson.M{"$ne": exclude},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListCompleteIDs returns the ids of all profile-complete users. Used by
// the nightly insight refresh, which only needs the ids.
func (s *Store) ListCompleteIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"is_profile_complete": true},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// CountComplete returns the number of profile-complete users.
func (s *Store) CountComplete(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_profile_complete": true})
}

// CountAll returns the total number of users.
func (s *Store) CountAll(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
