// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a student account created on first Google sign-in.
//
// NOTE:
//   - DSARating is a pointer: an unset rating is "absent", never 0.
//     The match scorer and group filters skip their rating terms when
//     either side has no rating.
//   - IsProfileComplete is recomputed on every profile update: a profile
//     is complete once it has a rating, at least one skill, and a tech stack.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID string             `bson:"google_id" json:"-"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	EmailCI  string             `bson:"email_ci" json:"-"` // lowercase, trimmed
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`

	DSARating *int     `bson:"dsa_rating,omitempty" json:"dsaRating,omitempty"`
	Skills    []string `bson:"skills,omitempty" json:"skills,omitempty"`
	TechStack string   `bson:"tech_stack,omitempty" json:"techStack,omitempty"`

	IsProfileComplete bool `bson:"is_profile_complete" json:"isProfileComplete"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
