// Package skills scores resume skill overlap with posting requirements.
package skills

import (
	"math"

	"github.com/spigell/job-fit/internal/posting"
)

const (
	// EmptyRequirementsScore is reported when a posting lists no skills.
	EmptyRequirementsScore = 50

	bonusPerKeyword = 2
	maxKeywordBonus = 10
)

type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// BandFor buckets a skills score: high from 65, medium from 40.
func BandFor(score int) Band {
	switch {
	case score >= 65:
		return BandHigh
	case score >= 40:
		return BandMedium
	default:
		return BandLow
	}
}

// Result is the outcome of matching resume skills against one posting.
// Matched and Missing keep the posting's spelling and order.
type Result struct {
	Score   int      `json:"score"`
	Matched []string `json:"matched_skills"`
	Missing []string `json:"missing_skills"`
	// KeywordBonus is the part of Score earned by industry keywords.
	KeywordBonus int  `json:"keyword_bonus"`
	Band         Band `json:"band"`
}

// Score intersects resume skills with the posting requirements. Each resume
// skill that matches a posting keyword outside the requirement list adds a
// bonus, capped in total.
func Score(resumeSkills []string, r posting.Record) Result {
	resume := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		if key := Normalize(s); key != "" {
			resume[key] = struct{}{}
		}
	}

	required := make(map[string]struct{}, len(r.RequiredSkills))
	result := Result{Matched: []string{}, Missing: []string{}}
	for _, s := range r.RequiredSkills {
		key := Normalize(s)
		if key == "" {
			continue
		}
		if _, dup := required[key]; dup {
			continue
		}
		required[key] = struct{}{}

		if _, ok := resume[key]; ok {
			result.Matched = append(result.Matched, s)
		} else {
			result.Missing = append(result.Missing, s)
		}
	}

	if len(required) == 0 {
		result.Score = EmptyRequirementsScore
		result.Band = BandMedium
		return result
	}

	base := int(math.Round(100 * float64(len(result.Matched)) / float64(len(required))))
	result.KeywordBonus = keywordBonus(resume, required, r.Keywords)
	result.Score = min(base+result.KeywordBonus, 100)
	result.Band = BandFor(result.Score)

	return result
}

func keywordBonus(resume, required map[string]struct{}, keywords []string) int {
	seen := make(map[string]struct{}, len(keywords))
	bonus := 0
	for _, k := range keywords {
		key := Normalize(k)
		if key == "" {
			continue
		}
		if _, ok := required[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := resume[key]; ok {
			bonus += bonusPerKeyword
		}
	}
	return min(bonus, maxKeywordBonus)
}
