package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreNoRequiredSkills(t *testing.T) {
	job := Job{Title: "Software Engineer"}
	candidate := Candidate{Skills: []string{"python", "go"}, ExperienceYears: 10}
	assert.Equal(t, 0, Score(job, candidate))
}

func TestScoreFullOverlap(t *testing.T) {
	job := Job{Title: "Backend Engineer", RequiredSkills: []string{"python", "sql"}}
	candidate := Candidate{Skills: []string{"python", "sql"}}
	assert.Equal(t, 100, Score(job, candidate))
}

func TestScoreSupersetScoresFull(t *testing.T) {
	// Extra candidate skills never reduce the score
	job := Job{Title: "Backend Engineer", RequiredSkills: []string{"python"}}
	candidate := Candidate{Skills: []string{"python", "go", "rust", "kubernetes"}}
	assert.Equal(t, 100, Score(job, candidate))
}

func TestScorePartialOverlap(t *testing.T) {
	job := Job{Title: "Backend Engineer", RequiredSkills: []string{"python", "sql", "docker", "aws"}}
	candidate := Candidate{Skills: []string{"python", "sql"}}
	assert.Equal(t, 50, Score(job, candidate))
}

func TestScoreNoOverlap(t *testing.T) {
	job := Job{Title: "Backend Engineer", RequiredSkills: []string{"java", "spring"}}
	candidate := Candidate{Skills: []string{"python"}}
	assert.Equal(t, 0, Score(job, candidate))
}

func TestScoreCaseInsensitiveSkills(t *testing.T) {
	job := Job{RequiredSkills: []string{"Python", "SQL"}}
	candidate := Candidate{Skills: []string{"python", "sql"}}
	assert.Equal(t, 100, Score(job, candidate))
}

func TestScoreDuplicateRequirementsCountOnce(t *testing.T) {
	job := Job{RequiredSkills: []string{"python", "Python", "PYTHON", "sql"}}
	candidate := Candidate{Skills: []string{"python"}}
	assert.Equal(t, 50, Score(job, candidate))
}

func TestScoreExperienceBonus(t *testing.T) {
	job := Job{RequiredSkills: []string{"python", "sql"}, ExperienceMin: 3}
	candidate := Candidate{Skills: []string{"python"}, ExperienceYears: 5}

	// 50 base + 10 experience bonus
	assert.Equal(t, 60, Score(job, candidate))
}

func TestScoreExperiencePartialCredit(t *testing.T) {
	job := Job{RequiredSkills: []string{"python", "sql"}, ExperienceMin: 4}
	candidate := Candidate{Skills: []string{"python"}, ExperienceYears: 2}

	// 50 base + 5 partial experience credit
	assert.Equal(t, 55, Score(job, candidate))
}

func TestScoreNoExperienceBonusWithoutStatedMinimum(t *testing.T) {
	job := Job{RequiredSkills: []string{"python"}}
	with := Candidate{Skills: []string{"python"}, ExperienceYears: 10}
	without := Candidate{Skills: []string{"python"}}
	assert.Equal(t, Score(job, without), Score(job, with))
}

func TestScoreTitleBonus(t *testing.T) {
	job := Job{Title: "Senior Backend Engineer", RequiredSkills: []string{"python", "sql"}}
	candidate := Candidate{
		Skills:        []string{"python"},
		DesiredTitles: []string{"backend engineer"},
	}

	// 50 base + 5 title bonus
	assert.Equal(t, 55, Score(job, candidate))
}

func TestScoreClampedAt100(t *testing.T) {
	job := Job{Title: "Backend Engineer", RequiredSkills: []string{"python"}, ExperienceMin: 1}
	candidate := Candidate{
		Skills:          []string{"python"},
		ExperienceYears: 10,
		DesiredTitles:   []string{"backend engineer"},
	}
	assert.Equal(t, 100, Score(job, candidate))
}

func TestScoreDeterministic(t *testing.T) {
	job := Job{Title: "Data Engineer", RequiredSkills: []string{"python", "sql", "aws"}, ExperienceMin: 3}
	candidate := Candidate{
		Skills:          []string{"sql", "python"},
		ExperienceYears: 2,
		DesiredTitles:   []string{"data engineer", "backend engineer"},
	}

	first := Score(job, candidate)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(job, candidate))
	}
}
