// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/studymatch/internal/app/system/normalize"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrGroupFull is returned when a join would exceed capacity.
	ErrGroupFull = errors.New("group is full")
	// ErrGroupClosed is returned when the group is locked or full.
	ErrGroupClosed = errors.New("group is not open")
	// ErrAlreadyMember is returned when the user already belongs to the group.
	ErrAlreadyMember = errors.New("already a group member")
	// ErrNotCreator is returned when a creator-only operation is attempted
	// by someone else.
	ErrNotCreator = errors.New("only the group creator may do this")
	// ErrCreatorLeave is returned when the creator tries to leave instead
	// of deleting the group.
	ErrCreatorLeave = errors.New("creator cannot leave the group")
	// ErrNotMember is returned when leaving a group the user never joined.
	ErrNotMember = errors.New("not a group member")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Create inserts a new group with the creator as its first member and the
// status derived from the initial state.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.MemberIDs = []primitive.ObjectID{g.CreatorID}
	g.RequiredSkills = normalize.Skills(g.RequiredSkills)
	g.Status = g.DeriveStatus()
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Status    string
	TechStack string
	Skill     string // matches any entry of required_skills
}

// List returns groups matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Group, error) {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.TechStack != "" {
		q["tech_stack"] = f.TechStack
	}
	if f.Skill != "" {
		q["required_skills"] = bson.M{"$in": bson.A{f.Skill}}
	}

	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListOpen returns every group whose status is OPEN, in insertion order.
func (s *Store) ListOpen(ctx context.Context) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{"status": models.GroupStatusOpen})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddMember appends the user to the group and re-derives the status.
// The membership and capacity checks belong to the caller, which also
// enforces the group's eligibility filters.
func (s *Store) AddMember(ctx context.Context, id, userID primitive.ObjectID) (*models.Group, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.HasMember(userID) {
		return nil, ErrAlreadyMember
	}
	if g.Status != models.GroupStatusOpen {
		return nil, ErrGroupClosed
	}
	if len(g.MemberIDs) >= g.Capacity {
		return nil, ErrGroupFull
	}

	g.MemberIDs = append(g.MemberIDs, userID)
	return s.saveMembers(ctx, g)
}

// RemoveMember drops the user from the group and re-derives the status.
// The creator cannot leave; the group is deleted instead.
func (s *Store) RemoveMember(ctx context.Context, id, userID primitive.ObjectID) (*models.Group, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.CreatorID == userID {
		return nil, ErrCreatorLeave
	}
	if !g.HasMember(userID) {
		return nil, ErrNotMember
	}

	kept := g.MemberIDs[:0]
	for _, m := range g.MemberIDs {
		if m != userID {
			kept = append(kept, m)
		}
	}
	g.MemberIDs = kept
	return s.saveMembers(ctx, g)
}

func (s *Store) saveMembers(ctx context.Context, g *models.Group) (*models.Group, error) {
	g.Status = g.DeriveStatus()
	g.UpdatedAt = time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, g.ID, bson.M{"$set": bson.M{
		"member_ids": g.MemberIDs,
		"status":     g.Status,
		"updated_at": g.UpdatedAt,
	}})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// SetLocked toggles the creator's lock on joining and re-derives the
// status. A full group stays FULL regardless of the lock flag.
func (s *Store) SetLocked(ctx context.Context, id, callerID primitive.ObjectID, locked bool) (*models.Group, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.CreatorID != callerID {
		return nil, ErrNotCreator
	}

	g.IsLocked = locked
	g.Status = g.DeriveStatus()
	g.UpdatedAt = time.Now().UTC()
	_, err = s.c.UpdateByID(ctx, g.ID, bson.M{"$set": bson.M{
		"is_locked":  g.IsLocked,
		"status":     g.Status,
		"updated_at": g.UpdatedAt,
	}})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes a group if the caller is its creator.
func (s *Store) Delete(ctx context.Context, id, callerID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g.CreatorID != callerID {
		return ErrNotCreator
	}
	_, err = s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
