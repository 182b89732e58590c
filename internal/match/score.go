// Package match computes deterministic compatibility scores between job
// postings and candidate profiles.
package match

import (
	"math"
	"strings"
)

// Weights for scoring components. The skill overlap ratio maps onto the full
// 0-100 range; the bonuses are additive and the result is clamped, so a
// candidate whose skills cover every requirement always scores 100.
const (
	experienceBonus = 10.0
	titleBonus      = 5.0
)

// Job holds the posting fields the scorer reads
type Job struct {
	Title          string
	RequiredSkills []string
	ExperienceMin  int // 0 means the posting states no minimum
}

// Candidate holds the profile fields the scorer reads
type Candidate struct {
	Skills          []string
	ExperienceYears int
	DesiredTitles   []string
}

// Score returns an integer percentage in [0, 100]. It is a pure function:
// identical inputs always produce the identical output, so re-scoring after
// a profile edit changes the result only when the inputs changed.
func Score(job Job, candidate Candidate) int {
	if len(job.RequiredSkills) == 0 {
		return 0
	}

	score := skillOverlapRatio(job.RequiredSkills, candidate.Skills) * 100
	score += experienceScore(job.ExperienceMin, candidate.ExperienceYears)
	score += titleScore(job.Title, candidate.DesiredTitles)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}

// skillOverlapRatio computes |required ∩ candidate| / |required| over
// normalized tokens. Duplicate requirements count once.
func skillOverlapRatio(required, have []string) float64 {
	requiredSet := make(map[string]bool, len(required))
	for _, s := range required {
		if token := NormalizeSkill(s); token != "" {
			requiredSet[token] = true
		}
	}
	if len(requiredSet) == 0 {
		return 0
	}

	haveSet := make(map[string]bool, len(have))
	for _, s := range have {
		if token := NormalizeSkill(s); token != "" {
			haveSet[token] = true
		}
	}

	matched := 0
	for token := range requiredSet {
		if haveSet[token] {
			matched++
		}
	}
	return float64(matched) / float64(len(requiredSet))
}

// experienceScore grants the full bonus when the candidate meets the stated
// minimum and linear partial credit below it. Postings without a stated
// minimum grant nothing, keeping the boundary cases exact.
func experienceScore(requiredYears, haveYears int) float64 {
	if requiredYears <= 0 {
		return 0
	}
	if haveYears >= requiredYears {
		return experienceBonus
	}
	if haveYears <= 0 {
		return 0
	}
	return float64(haveYears) / float64(requiredYears) * experienceBonus
}

// titleScore grants the bonus when any desired title appears in the posting
// title (case-insensitive substring, either direction).
func titleScore(jobTitle string, desired []string) float64 {
	title := strings.ToLower(strings.TrimSpace(jobTitle))
	if title == "" {
		return 0
	}
	for _, d := range desired {
		want := strings.ToLower(strings.TrimSpace(d))
		if want == "" {
			continue
		}
		if strings.Contains(title, want) || strings.Contains(want, title) {
			return titleBonus
		}
	}
	return 0
}
