// internal/app/system/normalize/normalize.go
// Package normalize provides canonical forms for user-supplied fields.
//
// Skills, tech stacks, and emails are compared case-insensitively across the
// whole platform (scoring, group filters, population analysis), so every
// comparison goes through the same folding rules defined here.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Skill folds one skill label for comparison: trimmed and lowercased.
// The stored (display) form keeps the user's casing.
func Skill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TechStack folds a tech-stack label the same way skills are folded.
func TechStack(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Skills trims every entry and drops empties, preserving order and the
// original casing. Used when persisting a profile update.
func Skills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SkillSet folds a skill list into a lookup set.
func SkillSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		if f := Skill(s); f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}
