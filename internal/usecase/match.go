package usecase

import (
	"math"
	"strings"
)

// skillSet lowercases, trims and dedupes skills
func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// MatchScore is the percentage of the job's skills the user has, rounded
// half away from zero. A job with no skills scores 0.
func MatchScore(jobSkills []string, userSkills map[string]struct{}) int {
	job := skillSet(jobSkills)
	if len(job) == 0 {
		return 0
	}
	hits := 0
	for s := range job {
		if _, ok := userSkills[s]; ok {
			hits++
		}
	}
	return int(math.Round(100 * float64(hits) / float64(len(job))))
}
