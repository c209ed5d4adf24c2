// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group status values. Status is derived from membership and lock state,
// never set directly by callers: FULL wins over LOCKED wins over OPEN.
const (
	GroupStatusOpen   = "OPEN"
	GroupStatusLocked = "LOCKED"
	GroupStatusFull   = "FULL"
)

// Group capacity bounds.
const (
	GroupCapacityMin = 2
	GroupCapacityMax = 50
)

// Group is a collaboration group with optional eligibility filters.
//
// The rating bounds are pointers so "no bound" is distinguishable from a
// bound of 0; a filter that is absent always passes.
type Group struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	CreatorID   primitive.ObjectID   `bson:"creator_id" json:"creatorId"`
	MemberIDs   []primitive.ObjectID `bson:"member_ids" json:"memberIds"`

	RequiredSkills []string `bson:"required_skills,omitempty" json:"requiredSkills,omitempty"`
	TechStack      string   `bson:"tech_stack,omitempty" json:"techStack,omitempty"`
	DSARatingMin   *int     `bson:"dsa_rating_min,omitempty" json:"dsaRatingMin,omitempty"`
	DSARatingMax   *int     `bson:"dsa_rating_max,omitempty" json:"dsaRatingMax,omitempty"`

	Capacity int    `bson:"capacity" json:"capacity"`
	IsLocked bool   `bson:"is_locked" json:"isLocked"`
	Status   string `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MemberCount returns the current number of members.
func (g *Group) MemberCount() int {
	return len(g.MemberIDs)
}

// DeriveStatus returns the status implied by the current member count and
// lock flag.
func (g *Group) DeriveStatus() string {
	switch {
	case len(g.MemberIDs) >= g.Capacity:
		return GroupStatusFull
	case g.IsLocked:
		return GroupStatusLocked
	default:
		return GroupStatusOpen
	}
}

// HasMember reports whether the user is already a member.
func (g *Group) HasMember(userID primitive.ObjectID) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
