// internal/domain/models/insight.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Insight categories.
const (
	InsightSkillGap         = "skill_gap"
	InsightMatchImprovement = "match_improvement"
	InsightProgress         = "progress"
	InsightOpportunity      = "opportunity"
)

// InsightValidity is how long a generated insight stays current.
const InsightValidity = 24 * time.Hour

// PrimaryInsight is the main recommendation shown to the user.
type PrimaryInsight struct {
	Headline    string `bson:"headline" json:"headline"`
	Explanation string `bson:"explanation" json:"explanation"`
	Category    string `bson:"category" json:"category"`
	ActionCTA   string `bson:"action_cta,omitempty" json:"actionCTA,omitempty"`
	ActionLink  string `bson:"action_link,omitempty" json:"actionLink,omitempty"`
}

// SecondaryTip is an optional follow-on suggestion.
type SecondaryTip struct {
	Headline    string `bson:"headline" json:"headline"`
	Explanation string `bson:"explanation" json:"explanation"`
}

// InsightMetadata snapshots the population statistics the insight was
// derived from, kept for audit and debugging only.
type InsightMetadata struct {
	MatchPercentage int      `bson:"match_percentage" json:"matchPercentage"`
	SkillGaps       []string `bson:"skill_gaps,omitempty" json:"skillGaps,omitempty"`
	SuggestedSkills []string `bson:"suggested_skills,omitempty" json:"suggestedSkills,omitempty"`
	MatchCount      int      `bson:"match_count" json:"matchCount"`
}

// Insight is the single current daily insight for a user. Exactly one
// document exists per user (unique index on user_id); each generation
// overwrites the previous one.
type Insight struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	Primary      PrimaryInsight     `bson:"primary" json:"primaryInsight"`
	SecondaryTip *SecondaryTip      `bson:"secondary_tip,omitempty" json:"secondaryTip,omitempty"`
	GeneratedAt  time.Time          `bson:"generated_at" json:"generatedAt"`
	ExpiresAt    time.Time          `bson:"expires_at" json:"expiresAt"`
	Metadata     InsightMetadata    `bson:"metadata" json:"metadata"`
}

// Valid reports whether the insight is still current at the given time.
// Expiry is strict: an insight expiring exactly now is no longer valid.
func (i *Insight) Valid(now time.Time) bool {
	return i.ExpiresAt.After(now)
}
