package fit

import (
	"github.com/spigell/job-fit/internal/posting"
	"github.com/spigell/job-fit/internal/profile"
)

const (
	neutral = float64(profile.NeutralScore)

	relocateScore           = 60
	relocateAssistedScore   = 70
	relocateUnassistedScore = 40

	travelPenaltyPerPercent = 2
)

// lookup returns the profile score for key, or the mean over keys when the
// posting did not state one. Keys missing from scores count as neutral.
func lookup[K ~string](scores map[K]int, keys []K, key K, known bool) float64 {
	if known {
		return float64(scoreOf(scores, key))
	}
	return average(scores, keys)
}

func scoreOf[K ~string](scores map[K]int, key K) int {
	v, ok := scores[key]
	if !ok {
		return profile.NeutralScore
	}
	return profile.Clamp(v)
}

func average[K ~string](scores map[K]int, keys []K) float64 {
	if len(keys) == 0 {
		return neutral
	}
	var sum int
	for _, k := range keys {
		sum += scoreOf(scores, k)
	}
	return float64(sum) / float64(len(keys))
}

func locationScore(p *profile.Profile, r posting.Record) float64 {
	if !r.HasLocation() {
		return neutral
	}
	if p.PrefersState(r.LocationState) {
		return 100
	}
	if !p.Location.WillingToRelocate {
		return 0
	}
	if !p.Location.RelocationAssistanceRequired {
		return relocateScore
	}
	if r.Relocation == posting.FlagNo {
		return relocateUnassistedScore
	}
	return relocateAssistedScore
}

// Compensation returns the raw compensation fit of a salary range before
// salary importance is applied. An unknown range is neutral.
func Compensation(c profile.Compensation, s posting.SalaryRange) float64 {
	if !s.Known {
		return neutral
	}
	if s.High < c.MinimumSalary {
		return 0
	}
	if s.Low >= c.IdealSalary {
		return 100
	}

	mid := s.Midpoint()
	span := c.IdealSalary - c.MinimumSalary
	if span <= 0 {
		if mid >= c.IdealSalary {
			return 100
		}
		return 0
	}

	return clamp((mid - c.MinimumSalary) / span * 100)
}

// compensationScore blends the raw fit toward neutral as salary importance drops.
func compensationScore(c profile.Compensation, s posting.SalaryRange) float64 {
	raw := Compensation(c, s)
	importance := float64(profile.Clamp(c.SalaryImportance)) / 100
	return raw*importance + (1-importance)*neutral
}

func responsibilityScore(p *profile.Profile, s posting.Seniority) float64 {
	level, ok := s.ResponsibilityLevel()
	return lookup(p.ResponsibilityScores, profile.ResponsibilityLevels, level, ok)
}

// workStyleScore averages travel, overtime, shift and weekend fit. A demand
// the posting does not state scores 100.
func workStyleScore(w profile.WorkStyle, r posting.Record) float64 {
	travel := 100.0
	if r.Travel.Stated && r.Travel.Percent > w.TravelTolerancePercent {
		travel = clamp(100 - travelPenaltyPerPercent*float64(r.Travel.Percent-w.TravelTolerancePercent))
	}

	overtime := 100.0
	if r.Overtime == posting.FlagYes {
		overtime = float64(profile.Clamp(w.OvertimeTolerance))
	}

	return (travel + overtime + acceptable(r.ShiftWork, w.ShiftWorkAcceptable) + acceptable(r.WeekendWork, w.WeekendWorkAcceptable)) / 4
}

func acceptable(demand posting.Flag, ok bool) float64 {
	if demand != posting.FlagYes || ok {
		return 100
	}
	return 0
}

func clamp(v float64) float64 {
	return min(max(v, 0), 100)
}
