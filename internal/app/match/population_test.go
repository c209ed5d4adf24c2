package match

import (
	"reflect"
	"testing"

	"github.com/dalemusser/studymatch/internal/domain/models"
)

func TestAnalyze_NoOtherUsers(t *testing.T) {
	target := &models.User{Skills: []string{"go"}, TechStack: "mern"}

	stats := Analyze(target, nil, nil)

	if stats.MatchPercentage != 0 {
		t.Errorf("matchPercentage = %d, want 0 (zero-division guard)", stats.MatchPercentage)
	}
	if stats.MatchCount != 0 || stats.TotalGroups != 0 || stats.EligibleGroups != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if len(stats.SuggestedSkills) != 0 {
		t.Errorf("suggestedSkills = %v, want empty", stats.SuggestedSkills)
	}
}

func TestAnalyze_BinaryOverlapCounting(t *testing.T) {
	target := &models.User{Skills: []string{"React"}, TechStack: "MERN"}
	others := []models.User{
		{Skills: []string{"react", "graphql"}},            // skill overlap
		{TechStack: "mern"},                               // stack overlap
		{Skills: []string{"rust"}, TechStack: "lamp"},     // no overlap
		{Skills: []string{"REACT"}, TechStack: "django"},  // folded skill overlap
	}

	stats := Analyze(target, others, nil)

	if stats.MatchCount != 3 {
		t.Errorf("matchCount = %d, want 3", stats.MatchCount)
	}
	if stats.MatchPercentage != 75 {
		t.Errorf("matchPercentage = %d, want 75", stats.MatchPercentage)
	}
}

func TestAnalyze_SkillGapsFirstSeenOrder(t *testing.T) {
	target := &models.User{Skills: []string{"react"}}
	others := []models.User{
		{Skills: []string{"graphql", "docker"}},
		{Skills: []string{"docker", "rust"}},
		{Skills: []string{"docker", "rust"}},
	}

	stats := Analyze(target, others, nil)

	// docker seen 3x, rust 2x, graphql 1x. Gap list keeps first-seen order.
	wantGaps := []string{"graphql", "docker", "rust"}
	if !reflect.DeepEqual(stats.SkillGaps, wantGaps) {
		t.Errorf("skillGaps = %v, want %v", stats.SkillGaps, wantGaps)
	}
	wantSuggested := []string{"docker", "rust", "graphql"}
	if !reflect.DeepEqual(stats.SuggestedSkills, wantSuggested) {
		t.Errorf("suggestedSkills = %v, want %v", stats.SuggestedSkills, wantSuggested)
	}
}

func TestAnalyze_SuggestedSkillsTieBreakIsStable(t *testing.T) {
	target := &models.User{}
	// Four distinct gaps, each seen once: ties must keep first-seen order
	// and the list is capped at three.
	others := []models.User{
		{Skills: []string{"zig", "ada"}},
		{Skills: []string{"cobol", "fortran"}},
	}

	stats := Analyze(target, others, nil)

	want := []string{"zig", "ada", "cobol"}
	if !reflect.DeepEqual(stats.SuggestedSkills, want) {
		t.Errorf("suggestedSkills = %v, want %v", stats.SuggestedSkills, want)
	}
}

func TestAnalyze_GroupEligibilityCounts(t *testing.T) {
	rating := 1200
	target := &models.User{
		Skills:    []string{"react"},
		TechStack: "mern",
		DSARating: &rating,
	}
	min1000, max1100 := 1000, 1100
	groups := []models.Group{
		{},                               // no filters, eligible
		{DSARatingMin: &min1000},         // 1200 >= 1000, eligible
		{DSARatingMax: &max1100},         // 1200 > 1100, not eligible
		{TechStack: "django"},            // stack mismatch
		{RequiredSkills: []string{"React", "vue"}}, // any-one overlap, eligible
	}

	stats := Analyze(target, nil, groups)

	if stats.TotalGroups != 5 {
		t.Errorf("totalGroups = %d, want 5", stats.TotalGroups)
	}
	if stats.EligibleGroups != 3 {
		t.Errorf("eligibleGroups = %d, want 3", stats.EligibleGroups)
	}
}

func TestEligibleForGroup(t *testing.T) {
	rating := 1500
	min, max := 1000, 2000
	lowMax := 1400

	tests := []struct {
		name string
		user models.User
		grp  models.Group
		want bool
	}{
		{"no filters", models.User{}, models.Group{}, true},
		{"within range", models.User{DSARating: &rating},
			models.Group{DSARatingMin: &min, DSARatingMax: &max}, true},
		{"above max", models.User{DSARating: &rating},
			models.Group{DSARatingMax: &lowMax}, false},
		{"unrated user passes rating bounds", models.User{},
			models.Group{DSARatingMin: &min, DSARatingMax: &max}, true},
		{"stack mismatch", models.User{TechStack: "mern"},
			models.Group{TechStack: "lamp"}, false},
		{"stack match folded", models.User{TechStack: "MERN"},
			models.Group{TechStack: "mern"}, true},
		{"no user stack passes stack filter", models.User{},
			models.Group{TechStack: "lamp"}, true},
		{"required skill present", models.User{Skills: []string{"Go"}},
			models.Group{RequiredSkills: []string{"go", "rust"}}, true},
		{"required skill absent", models.User{Skills: []string{"php"}},
			models.Group{RequiredSkills: []string{"go", "rust"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EligibleForGroup(&tt.user, &tt.grp); got != tt.want {
				t.Errorf("EligibleForGroup() = %v, want %v", got, tt.want)
			}
		})
	}
}
