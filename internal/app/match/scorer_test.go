package match

import (
	"reflect"
	"testing"

	"github.com/dalemusser/studymatch/internal/domain/models"
)

func intPtr(v int) *int { return &v }

func TestScore_SkillAndStackCombination(t *testing.T) {
	q := Query{
		Skills:    []string{"React", "Node.js"},
		TechStack: "MERN",
	}
	candidate := &models.User{
		Skills:    []string{"react", "node.js", "mongodb"},
		TechStack: "mern",
	}

	res := Score(q, candidate)

	if res.Score != 13.00 {
		t.Errorf("score = %v, want 13.00", res.Score)
	}
	if !res.Explanation.TechStackMatch {
		t.Error("expected techStackMatch = true")
	}
	want := []string{"React", "Node.js"}
	if !reflect.DeepEqual(res.Explanation.SkillMatches, want) {
		t.Errorf("skillMatches = %v, want %v", res.Explanation.SkillMatches, want)
	}
	if len(res.Explanation.Breakdown) != 3 {
		t.Errorf("expected 3 breakdown lines, got %v", res.Explanation.Breakdown)
	}
}

func TestScore_RatingPenaltyFloorsAtZero(t *testing.T) {
	q := Query{DSARating: intPtr(1200)}
	candidate := &models.User{DSARating: intPtr(1300)}

	res := Score(q, candidate)

	if res.Score != 0 {
		t.Errorf("score = %v, want 0 (raw -1.0 floored)", res.Score)
	}
	if res.Explanation.DSARatingDiff == nil || *res.Explanation.DSARatingDiff != 100 {
		t.Errorf("dsaRatingDiff = %v, want 100", res.Explanation.DSARatingDiff)
	}
}

func TestScore_PerfectRatingMatchRecorded(t *testing.T) {
	q := Query{DSARating: intPtr(1500)}
	candidate := &models.User{DSARating: intPtr(1500)}

	res := Score(q, candidate)

	if res.Score != 0 {
		t.Errorf("score = %v, want 0", res.Score)
	}
	if res.Explanation.DSARatingDiff == nil || *res.Explanation.DSARatingDiff != 0 {
		t.Errorf("dsaRatingDiff = %v, want 0", res.Explanation.DSARatingDiff)
	}
	if len(res.Explanation.Breakdown) != 1 ||
		res.Explanation.Breakdown[0] != "+0 points: Perfect DSA rating match" {
		t.Errorf("breakdown = %v", res.Explanation.Breakdown)
	}
}

func TestScore_SkillCaseInsensitive(t *testing.T) {
	exact := Score(Query{Skills: []string{"React"}}, &models.User{Skills: []string{"React"}})
	folded := Score(Query{Skills: []string{"React"}}, &models.User{Skills: []string{"  react "}})

	if exact.Score != 5.00 || folded.Score != 5.00 {
		t.Errorf("exact = %v, folded = %v, want both 5.00", exact.Score, folded.Score)
	}
}

func TestScore_MissingDimensionsSkipTerms(t *testing.T) {
	tests := []struct {
		name      string
		q         Query
		candidate models.User
	}{
		{"empty query skills", Query{TechStack: ""}, models.User{Skills: []string{"go"}}},
		{"empty candidate skills", Query{Skills: []string{"go"}}, models.User{}},
		{"no stack on candidate", Query{TechStack: "MERN"}, models.User{}},
		{"no rating on candidate", Query{DSARating: intPtr(1000)}, models.User{}},
		{"everything absent", Query{}, models.User{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Score(tt.q, &tt.candidate)
			if res.Score != 0 {
				t.Errorf("score = %v, want 0", res.Score)
			}
			if res.Explanation.DSARatingDiff != nil {
				t.Error("expected no rating diff recorded")
			}
			if len(res.Explanation.Breakdown) != 0 {
				t.Errorf("expected empty breakdown, got %v", res.Explanation.Breakdown)
			}
		})
	}
}

func TestScore_RatingPenaltyPartiallyOffsets(t *testing.T) {
	// One skill (+5), rating 150 apart (-1.5) = 3.50.
	q := Query{Skills: []string{"go"}, DSARating: intPtr(1000)}
	candidate := &models.User{Skills: []string{"Go"}, DSARating: intPtr(1150)}

	res := Score(q, candidate)

	if res.Score != 3.50 {
		t.Errorf("score = %v, want 3.50", res.Score)
	}
}

func TestScore_Deterministic(t *testing.T) {
	q := Query{Skills: []string{"React", "Go"}, TechStack: "MERN", DSARating: intPtr(1234)}
	candidate := &models.User{
		Skills:    []string{"go", "react", "rust"},
		TechStack: "mern",
		DSARating: intPtr(1500),
	}

	first := Score(q, candidate)
	for i := 0; i < 10; i++ {
		again := Score(q, candidate)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %+v vs %+v", i, first, again)
		}
	}
}
