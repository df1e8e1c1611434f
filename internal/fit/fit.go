// Package fit scores a posting against a preference profile.
package fit

import (
	"math"

	"github.com/spigell/job-fit/internal/posting"
	"github.com/spigell/job-fit/internal/profile"
)

type Category string

const (
	CategoryEmploymentType  Category = "employment_type"
	CategoryWorkArrangement Category = "work_arrangement"
	CategoryLocation        Category = "location"
	CategoryCompensation    Category = "compensation"
	CategoryResponsibility  Category = "responsibility"
	CategoryWorkStyle       Category = "work_style"
)

// Categories lists the scored categories in report order.
var Categories = []Category{
	CategoryEmploymentType,
	CategoryWorkArrangement,
	CategoryLocation,
	CategoryCompensation,
	CategoryResponsibility,
	CategoryWorkStyle,
}

// Weights are the fixed category weights. They sum to 100.
var Weights = map[Category]int{
	CategoryEmploymentType:  20,
	CategoryWorkArrangement: 15,
	CategoryLocation:        15,
	CategoryCompensation:    25,
	CategoryResponsibility:  15,
	CategoryWorkStyle:       10,
}

// LowConfidenceCap is the highest score reported for a posting that states
// neither employment type, location nor salary.
const LowConfidenceCap = 50

// InsufficientPostingData is the warning attached to low-confidence results.
const InsufficientPostingData = "InsufficientPostingData"

type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// BandFor buckets a fit score: high from 70, medium from 50.
func BandFor(score int) Band {
	switch {
	case score >= 70:
		return BandHigh
	case score >= 50:
		return BandMedium
	default:
		return BandLow
	}
}

// Result is the outcome of scoring one posting. It is not modified after Score returns.
type Result struct {
	Score      int              `json:"score"`
	Categories map[Category]int `json:"per_category_scores"`
	Band       Band             `json:"band"`
	// LowConfidence is set when the posting carries too little data to trust the score.
	LowConfidence bool     `json:"low_confidence"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Score computes the weighted job fit of a posting. A nil profile is scored
// as the neutral profile. p is only read.
func Score(p *profile.Profile, r posting.Record) Result {
	if p == nil {
		p = profile.Neutral()
	}

	sub := map[Category]float64{
		CategoryEmploymentType:  lookup(p.EmploymentTypeScores, profile.EmploymentTypes, r.EmploymentType, r.HasEmploymentType()),
		CategoryWorkArrangement: lookup(p.WorkArrangementScores, profile.WorkArrangements, r.WorkArrangement, r.HasWorkArrangement()),
		CategoryLocation:        locationScore(p, r),
		CategoryCompensation:    compensationScore(p.Compensation, r.Salary),
		CategoryResponsibility:  responsibilityScore(p, r.Seniority),
		CategoryWorkStyle:       workStyleScore(p.WorkStyle, r),
	}

	var total float64
	categories := make(map[Category]int, len(sub))
	for _, c := range Categories {
		total += float64(Weights[c]) * sub[c]
		categories[c] = round(sub[c])
	}

	result := Result{
		Score:      profile.Clamp(round(total / 100)),
		Categories: categories,
	}

	if !r.HasEmploymentType() && !r.HasLocation() && !r.Salary.Known {
		result.LowConfidence = true
		result.Score = min(result.Score, LowConfidenceCap)
		result.Warnings = append(result.Warnings, InsufficientPostingData)
	}

	result.Band = BandFor(result.Score)

	return result
}

func round(v float64) int {
	return int(math.Round(v))
}
