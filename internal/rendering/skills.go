package rendering

// SkillCuts returns the two cut points that split n skills into three
// contiguous groups: ceil(n/3) and ceil(2n/3).
func SkillCuts(n int) (int, int) {
	if n <= 0 {
		return 0, 0
	}
	return (n + 2) / 3, (2*n + 2) / 3
}

// PartitionSkills splits skills positionally into three labelled groups.
// The split is not semantic. Empty groups are omitted.
func PartitionSkills(skills []string, labels [3]string) []SkillGroup {
	a, b := SkillCuts(len(skills))
	parts := [3][]string{skills[:a], skills[a:b], skills[b:]}

	var groups []SkillGroup
	for i, p := range parts {
		if len(p) == 0 {
			continue
		}
		groups = append(groups, SkillGroup{
			Label:  labels[i],
			Skills: append([]string(nil), p...),
		})
	}
	return groups
}
