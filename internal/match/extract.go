package match

import (
	"regexp"
	"strconv"
	"strings"
)

// knownSkills is the vocabulary used to recognize skill tokens in free-text
// descriptions when a source provides no structured tags.
var knownSkills = []string{
	// Languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go", "rust",
	"php", "swift", "kotlin", "scala", "sql",
	// Web
	"react", "angular", "vue", "nodejs", "express", "django", "flask", "fastapi",
	"html", "css", "nextjs", "redux", "graphql", "rest",
	// Data & ML
	"machine learning", "deep learning", "nlp", "tensorflow", "pytorch",
	"scikit-learn", "pandas", "numpy", "data analysis", "statistics",
	// Databases
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "cassandra",
	"dynamodb", "sqlite",
	// Infra
	"docker", "kubernetes", "aws", "azure", "gcp", "jenkins", "git", "ci/cd",
	"terraform", "ansible", "linux", "bash", "nginx",
	// Practices
	"agile", "scrum", "microservices", "tdd", "unit testing", "websockets", "grpc",
}

var skillPatterns = buildSkillPatterns()

func buildSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(knownSkills))
	for _, skill := range knownSkills {
		patterns[skill] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}

// NormalizeSkill lowercases and trims a skill token. Empty results mean the
// token carries no signal and should be dropped.
func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSkills maps tokens through NormalizeSkill, dropping empties and
// duplicates while preserving first-seen order.
func NormalizeSkills(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		token := NormalizeSkill(t)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		out = append(out, token)
	}
	return out
}

// ExtractSkills returns the known skills mentioned in the text, in
// vocabulary order so repeated extractions are stable.
func ExtractSkills(text string) []string {
	var found []string
	for _, skill := range knownSkills {
		if skillPatterns[skill].MatchString(text) {
			found = append(found, skill)
		}
	}
	return found
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\+?\s*(?:to|-)\s*\d+\s*years?`),
	regexp.MustCompile(`(?i)minimum\s+(\d+)\s*years?`),
	regexp.MustCompile(`(?i)at least\s+(\d+)\s*years?`),
	regexp.MustCompile(`(?i)(\d+)\+?\s*years?`),
}

// ExtractExperienceYears returns the smallest stated years-of-experience
// requirement, or 0 when none is found.
func ExtractExperienceYears(text string) int {
	best := 0
	for _, pattern := range experiencePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			years, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if best == 0 || years < best {
				best = years
			}
		}
	}
	return best
}

var salaryPatterns = []*regexp.Regexp{
	// $80,000 - $120,000
	regexp.MustCompile(`\$(\d{2,3}),?(\d{3})\s*-\s*\$?(\d{2,3}),?(\d{3})`),
	// $80k-$100k / 80k-100k
	regexp.MustCompile(`(?i)\$?(\d{2,3})k\s*-\s*\$?(\d{2,3})k`),
}

// ExtractSalaryRange parses a salary range from text. Both results are nil
// when no range is recognized.
func ExtractSalaryRange(text string) (min, max *float64) {
	if m := salaryPatterns[0].FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.ParseFloat(m[1]+m[2], 64)
		hi, err2 := strconv.ParseFloat(m[3]+m[4], 64)
		if err1 == nil && err2 == nil {
			return &lo, &hi
		}
	}
	if m := salaryPatterns[1].FindStringSubmatch(text); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			lo *= 1000
			hi *= 1000
			return &lo, &hi
		}
	}
	return nil, nil
}
