//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSkill(t *testing.T) {
	skills, added := AddSkill(nil, "Go")
	assert.True(t, added)
	assert.Equal(t, []string{"Go"}, skills)

	skills, added = AddSkill(skills, " Go ")
	assert.False(t, added)
	assert.Equal(t, []string{"Go"}, skills)

	skills, added = AddSkill(skills, "go")
	assert.True(t, added, "comparison is case-sensitive")
	assert.Equal(t, []string{"Go", "go"}, skills)

	skills, added = AddSkill(skills, "   ")
	assert.False(t, added)
	assert.Len(t, skills, 2)
}

func TestNormalizeSkills(t *testing.T) {
	in := []string{"Go", "SQL", "Go", "", "Docker", "SQL"}
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, NormalizeSkills(in))
	assert.Empty(t, NormalizeSkills(nil))
}
