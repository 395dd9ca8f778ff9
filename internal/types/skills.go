package types

import "strings"

// AddSkill appends a trimmed skill unless it is empty or already present.
// Comparison is case-sensitive: "Go" and "go" are distinct skills.
func AddSkill(skills []string, skill string) ([]string, bool) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return skills, false
	}
	for _, s := range skills {
		if s == skill {
			return skills, false
		}
	}
	return append(skills, skill), true
}

// NormalizeSkills applies AddSkill to every element, keeping first occurrences
// in their original order. Used at write time; renderers never de-duplicate.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		out, _ = AddSkill(out, s)
	}
	return out
}
