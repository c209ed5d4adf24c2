// internal/app/match/scorer.go
// Package match implements the explainable peer-matching core: a pure
// scoring function over a search query and one candidate profile, and a
// population analyzer that aggregates overlap and group-eligibility
// statistics across all active users.
package match

import (
	"fmt"
	"math"

	"github.com/dalemusser/studymatch/internal/app/system/normalize"
	"github.com/dalemusser/studymatch/internal/domain/models"
)

// Scoring weights. A skill overlap weighs heaviest, a shared tech stack
// adds a flat bonus, and rating distance subtracts one point per 100.
const (
	skillPoints     = 5.0
	techStackPoints = 3.0
	ratingDivisor   = 100.0
)

// Query is an ad hoc search; every field is independently optional, and an
// absent field disables its scoring term entirely.
type Query struct {
	Skills    []string `json:"skills,omitempty"`
	TechStack string   `json:"techStack,omitempty"`
	DSARating *int     `json:"dsaRating,omitempty"`
}

// Explanation records how a score was reached.
type Explanation struct {
	SkillMatches   []string `json:"skillMatches"`
	TechStackMatch bool     `json:"techStackMatch"`
	DSARatingDiff  *int     `json:"dsaRatingDiff"`
	Breakdown      []string `json:"breakdown"`
}

// Result is one scored candidate.
type Result struct {
	Score       float64     `json:"score"`
	Explanation Explanation `json:"explanation"`
}

// Score computes the similarity between a query and one candidate profile.
// Pure and deterministic: no I/O, no shared state, identical inputs always
// produce an identical result.
//
// The running total may go negative from the rating penalty; it is floored
// at zero before the final two-decimal rounding, so a candidate with no
// overlapping dimensions scores exactly 0.
func Score(q Query, candidate *models.User) Result {
	var score float64
	expl := Explanation{
		SkillMatches: []string{},
		Breakdown:    []string{},
	}

	// Skill overlap. Skipped entirely when either side declares no skills.
	if len(q.Skills) > 0 && len(candidate.Skills) > 0 {
		candidateSkills := normalize.SkillSet(candidate.Skills)
		for _, skill := range q.Skills {
			if _, ok := candidateSkills[normalize.Skill(skill)]; ok {
				score += skillPoints
				expl.SkillMatches = append(expl.SkillMatches, skill)
				expl.Breakdown = append(expl.Breakdown,
					fmt.Sprintf("+5 points: Matching skill %q", skill))
			}
		}
	}

	// Tech stack. Both sides must declare one.
	if q.TechStack != "" && candidate.TechStack != "" &&
		normalize.TechStack(q.TechStack) == normalize.TechStack(candidate.TechStack) {
		score += techStackPoints
		expl.TechStackMatch = true
		expl.Breakdown = append(expl.Breakdown,
			fmt.Sprintf("+3 points: Matching tech stack %q", candidate.TechStack))
	}

	// Rating proximity penalty. Absence on either side skips the term;
	// an unset rating is never treated as 0.
	if q.DSARating != nil && candidate.DSARating != nil {
		diff := *q.DSARating - *candidate.DSARating
		if diff < 0 {
			diff = -diff
		}
		penalty := float64(diff) / ratingDivisor
		score -= penalty
		expl.DSARatingDiff = &diff
		if penalty > 0 {
			expl.Breakdown = append(expl.Breakdown,
				fmt.Sprintf("-%.2f points: DSA rating difference of %d", penalty, diff))
		} else {
			expl.Breakdown = append(expl.Breakdown, "+0 points: Perfect DSA rating match")
		}
	}

	if score < 0 {
		score = 0
	}
	return Result{
		Score:       math.Round(score*100) / 100,
		Explanation: expl,
	}
}
