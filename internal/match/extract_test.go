package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkill(t *testing.T) {
	assert.Equal(t, "python", NormalizeSkill("  Python "))
	assert.Equal(t, "", NormalizeSkill("   "))
}

func TestNormalizeSkillsDedupesPreservingOrder(t *testing.T) {
	out := NormalizeSkills([]string{"Go", "python", "GO", "", "  ", "SQL"})
	assert.Equal(t, []string{"go", "python", "sql"}, out)
}

func TestExtractSkillsFromDescription(t *testing.T) {
	text := "We are looking for a Python developer with Docker and AWS experience."
	skills := ExtractSkills(text)
	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "docker")
	assert.Contains(t, skills, "aws")
}

func TestExtractSkillsStableOrder(t *testing.T) {
	text := "AWS, Docker, Python"
	first := ExtractSkills(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExtractSkills(text))
	}
}

func TestExtractSkillsWordBoundaries(t *testing.T) {
	// "got" must not match "go", "scala" must not match inside "scalability"
	skills := ExtractSkills("We got great scalability")
	assert.NotContains(t, skills, "go")
	assert.NotContains(t, skills, "scala")
}

func TestExtractSkillsNone(t *testing.T) {
	assert.Empty(t, ExtractSkills("Great team, competitive pay"))
}

func TestExtractExperienceYears(t *testing.T) {
	assert.Equal(t, 5, ExtractExperienceYears("5+ years of experience required"))
	assert.Equal(t, 3, ExtractExperienceYears("minimum 3 years in backend development"))
	assert.Equal(t, 2, ExtractExperienceYears("at least 2 years with Go"))
	assert.Equal(t, 0, ExtractExperienceYears("no experience requirements listed"))
}

func TestExtractExperienceYearsTakesSmallest(t *testing.T) {
	text := "3 to 5 years of experience, 10+ years preferred"
	assert.Equal(t, 3, ExtractExperienceYears(text))
}

func TestExtractSalaryRangeFull(t *testing.T) {
	min, max := ExtractSalaryRange("Salary: $80,000 - $120,000 per year")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 80000.0, *min)
	assert.Equal(t, 120000.0, *max)
}

func TestExtractSalaryRangeShorthand(t *testing.T) {
	min, max := ExtractSalaryRange("We pay $90k-$110k")
	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 90000.0, *min)
	assert.Equal(t, 110000.0, *max)
}

func TestExtractSalaryRangeNone(t *testing.T) {
	min, max := ExtractSalaryRange("Competitive compensation")
	assert.Nil(t, min)
	assert.Nil(t, max)
}
