// internal/app/insight/composer.go
// Package insight turns population statistics into the one daily
// recommendation each user sees, and manages its 24-hour persistence.
package insight

import (
	"fmt"
	"unicode"

	"github.com/dalemusser/studymatch/internal/app/match"
	"github.com/dalemusser/studymatch/internal/domain/models"
)

// Composition thresholds. The skill-gap cutoff, the group-opportunity
// ratio, and the capped "potential increase" figure are product-tuned
// values carried over from the original rule set; do not rederive them.
const (
	skillGapMaxPercent     = 70
	improvementMinPercent  = 50
	improvementMaxPercent  = 80
	potentialIncreaseCap   = 25
	potentialIncreaseBoost = 15
)

// Compose selects the primary insight for a profile-complete user. The
// rules form a fixed ladder evaluated in order, first match wins; the
// ordering is deliberate (a skill gap outranks every other rule whenever
// the match percentage is under the cutoff) and must not be rearranged.
func Compose(stats match.Stats) models.PrimaryInsight {
	// 1. Skill gap.
	if len(stats.SuggestedSkills) > 0 && stats.MatchPercentage < skillGapMaxPercent {
		skill := titleCase(stats.SuggestedSkills[0])
		increase := stats.MatchPercentage + potentialIncreaseBoost
		if increase > potentialIncreaseCap {
			increase = potentialIncreaseCap
		}
		return models.PrimaryInsight{
			Headline:    fmt.Sprintf("Add %s to unlock %d%% more matches", skill, increase),
			Explanation: fmt.Sprintf("%s is in high demand. Adding it could significantly improve your match potential.", skill),
			Category:    models.InsightSkillGap,
			ActionCTA:   "Add Skill",
			ActionLink:  "/onboarding",
		}
	}

	// 2. Group opportunity.
	if stats.TotalGroups > 0 && stats.EligibleGroups*2 < stats.TotalGroups {
		missing := stats.TotalGroups - stats.EligibleGroups
		return models.PrimaryInsight{
			Headline:    fmt.Sprintf("You're missing %d group opportunities", missing),
			Explanation: "Expanding your skill set could unlock access to more collaboration groups.",
			Category:    models.InsightOpportunity,
			ActionCTA:   "View Groups",
			ActionLink:  "/groups",
		}
	}

	// 3. Match improvement.
	if stats.MatchPercentage >= improvementMinPercent && stats.MatchPercentage < improvementMaxPercent {
		return models.PrimaryInsight{
			Headline:    fmt.Sprintf("Your skills match %d%% of active students", stats.MatchPercentage),
			Explanation: "You're in a good position! Consider adding complementary skills to reach even more peers.",
			Category:    models.InsightMatchImprovement,
			ActionCTA:   "Find Matches",
			ActionLink:  "/search",
		}
	}

	// 4. High achiever.
	if stats.MatchPercentage >= improvementMaxPercent {
		return models.PrimaryInsight{
			Headline:    fmt.Sprintf("Excellent! You match %d%% of students", stats.MatchPercentage),
			Explanation: "Your skill profile is well-aligned with the community. Keep up the great work!",
			Category:    models.InsightProgress,
			ActionCTA:   "Explore Groups",
			ActionLink:  "/groups",
		}
	}

	// 5. Fallback for sparse profiles.
	return models.PrimaryInsight{
		Headline:    "Complete your profile to get personalized insights",
		Explanation: "Add your skills and preferences to unlock daily insights and better matches.",
		Category:    models.InsightOpportunity,
		ActionCTA:   "Complete Profile",
		ActionLink:  "/onboarding",
	}
}

// ComposeTip returns the optional secondary tip: the second-ranked
// suggested skill when there are two, the first when there is only one,
// nothing when the suggestion list is empty.
func ComposeTip(stats match.Stats) *models.SecondaryTip {
	if len(stats.SuggestedSkills) == 0 {
		return nil
	}
	skill := stats.SuggestedSkills[0]
	if len(stats.SuggestedSkills) > 1 {
		skill = stats.SuggestedSkills[1]
	}
	return &models.SecondaryTip{
		Headline:    "Quick Tip",
		Explanation: fmt.Sprintf("Learning %s could increase your group access by 15-20%%", titleCase(skill)),
	}
}

// OnboardingInsight is the fixed insight for incomplete profiles; the
// statistical ladder is bypassed entirely for them.
func OnboardingInsight() models.PrimaryInsight {
	return models.PrimaryInsight{
		Headline:    "Complete your profile to unlock insights",
		Explanation: "Add your skills and preferences to get personalized daily insights.",
		Category:    models.InsightOpportunity,
		ActionCTA:   "Complete Profile",
		ActionLink:  "/onboarding",
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
