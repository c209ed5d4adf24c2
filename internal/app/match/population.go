// internal/app/match/population.go
package match

import (
	"math"
	"sort"

	"github.com/dalemusser/studymatch/internal/app/system/normalize"
	"github.com/dalemusser/studymatch/internal/domain/models"
)

// maxSuggestedSkills caps the suggested-skill list.
const maxSuggestedSkills = 3

// Stats summarizes one user's standing against the active population.
type Stats struct {
	MatchCount      int      `json:"matchCount"`
	MatchPercentage int      `json:"matchPercentage"`
	EligibleGroups  int      `json:"eligibleGroups"`
	TotalGroups     int      `json:"totalGroups"`
	SkillGaps       []string `json:"skillGaps"`
	SuggestedSkills []string `json:"suggestedSkills"`
}

// Analyze computes population statistics for target against every other
// active user and the set of open groups. Operates on the snapshot passed
// in; no I/O.
//
// The match-count pass is a binary has-any-overlap test (shared tech stack
// OR at least one shared skill), deliberately cruder than Score: it answers
// "would this person show up at all".
func Analyze(target *models.User, others []models.User, openGroups []models.Group) Stats {
	targetSkills := normalize.SkillSet(target.Skills)
	targetStack := normalize.TechStack(target.TechStack)

	matchCount := 0
	gapCounts := make(map[string]int)
	gapOrder := []string{} // folded gap skills in first-seen order

	for i := range others {
		other := &others[i]
		hasMatch := false

		if targetStack != "" && other.TechStack != "" &&
			targetStack == normalize.TechStack(other.TechStack) {
			hasMatch = true
		}

		// Fold each skill once per other user so duplicate entries in a
		// profile don't inflate the gap frequency.
		counted := make(map[string]struct{}, len(other.Skills))
		for _, s := range other.Skills {
			folded := normalize.Skill(s)
			if folded == "" {
				continue
			}
			if _, dup := counted[folded]; dup {
				continue
			}
			counted[folded] = struct{}{}
			if _, shared := targetSkills[folded]; shared {
				hasMatch = true
				continue
			}
			if _, seen := gapCounts[folded]; !seen {
				gapOrder = append(gapOrder, folded)
			}
			gapCounts[folded]++
		}

		if hasMatch {
			matchCount++
		}
	}

	matchPercentage := 0
	if len(others) > 0 {
		matchPercentage = int(math.Round(float64(matchCount) / float64(len(others)) * 100))
	}

	eligible := 0
	for i := range openGroups {
		if EligibleForGroup(target, &openGroups[i]) {
			eligible++
		}
	}

	// Rank gaps by frequency; ties keep first-seen order, so the sort must
	// be stable over the insertion-ordered slice.
	suggested := make([]string, len(gapOrder))
	copy(suggested, gapOrder)
	sort.SliceStable(suggested, func(a, b int) bool {
		return gapCounts[suggested[a]] > gapCounts[suggested[b]]
	})
	if len(suggested) > maxSuggestedSkills {
		suggested = suggested[:maxSuggestedSkills]
	}

	return Stats{
		MatchCount:      matchCount,
		MatchPercentage: matchPercentage,
		EligibleGroups:  eligible,
		TotalGroups:     len(openGroups),
		SkillGaps:       gapOrder,
		SuggestedSkills: suggested,
	}
}

// EligibleForGroup reports whether the user passes every filter the group
// declares. A group with no filters is always eligible, and a filter only
// applies when both sides declare the dimension: a user with no rating is
// not excluded by a rating bound, and a user with no tech stack is not
// excluded by a stack filter.
func EligibleForGroup(u *models.User, g *models.Group) bool {
	if u.DSARating != nil {
		if g.DSARatingMin != nil && *u.DSARating < *g.DSARatingMin {
			return false
		}
		if g.DSARatingMax != nil && *u.DSARating > *g.DSARatingMax {
			return false
		}
	}
	if g.TechStack != "" && u.TechStack != "" &&
		normalize.TechStack(g.TechStack) != normalize.TechStack(u.TechStack) {
		return false
	}
	if len(g.RequiredSkills) > 0 {
		userSkills := normalize.SkillSet(u.Skills)
		any := false
		for _, s := range g.RequiredSkills {
			if _, ok := userSkills[normalize.Skill(s)]; ok {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}
