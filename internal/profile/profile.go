// Package profile holds the weighted career preferences a posting is scored against.
package profile

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// NeutralScore is used for every preference the user did not state.
const NeutralScore = 50

type EmploymentType string

const (
	FullTime EmploymentType = "full_time"
	PartTime EmploymentType = "part_time"
	Contract EmploymentType = "contract"
	Temp     EmploymentType = "temp"
)

// EmploymentTypes lists every employment type in display order.
var EmploymentTypes = []EmploymentType{FullTime, PartTime, Contract, Temp}

type WorkArrangement string

const (
	Remote WorkArrangement = "remote"
	Hybrid WorkArrangement = "hybrid"
	Onsite WorkArrangement = "onsite"
)

var WorkArrangements = []WorkArrangement{Remote, Hybrid, Onsite}

type ResponsibilityLevel string

const (
	IndividualContributor ResponsibilityLevel = "individual_contributor"
	TeamLead              ResponsibilityLevel = "team_lead"
	Manager               ResponsibilityLevel = "manager"
	SeniorManager         ResponsibilityLevel = "senior_manager"
	Director              ResponsibilityLevel = "director"
	Executive             ResponsibilityLevel = "executive"
)

var ResponsibilityLevels = []ResponsibilityLevel{
	IndividualContributor, TeamLead, Manager, SeniorManager, Director, Executive,
}

type CareerGoal string

const (
	GoalGrowth          CareerGoal = "growth"
	GoalStability       CareerGoal = "stability"
	GoalCompensation    CareerGoal = "compensation"
	GoalImpact          CareerGoal = "impact"
	GoalWorkLifeBalance CareerGoal = "work_life_balance"
	GoalLearning        CareerGoal = "learning"
)

var CareerGoals = []CareerGoal{
	GoalGrowth, GoalStability, GoalCompensation, GoalImpact, GoalWorkLifeBalance, GoalLearning,
}

// Profile is a user's weighted preferences. Scores are 0-100.
type Profile struct {
	EmploymentTypeScores  map[EmploymentType]int      `mapstructure:"employment_type_scores" json:"employment_type_scores" validate:"dive,keys,oneof=full_time part_time contract temp,endkeys,min=0,max=100"`
	WorkArrangementScores map[WorkArrangement]int     `mapstructure:"work_arrangement_scores" json:"work_arrangement_scores" validate:"dive,keys,oneof=remote hybrid onsite,endkeys,min=0,max=100"`
	Location              Location                    `mapstructure:"location" json:"location"`
	Compensation          Compensation                `mapstructure:"compensation" json:"compensation"`
	ResponsibilityScores  map[ResponsibilityLevel]int `mapstructure:"responsibility_scores" json:"responsibility_scores" validate:"dive,keys,oneof=individual_contributor team_lead manager senior_manager director executive,endkeys,min=0,max=100"`
	WorkStyle             WorkStyle                   `mapstructure:"work_style" json:"work_style"`
	CareerGoals           map[CareerGoal]int          `mapstructure:"career_goals" json:"career_goals" validate:"dive,keys,oneof=growth stability compensation impact work_life_balance learning,endkeys,min=0,max=100"`
}

type Location struct {
	PreferredStates              []string `mapstructure:"preferred_states" json:"preferred_states" validate:"dive,len=2,alpha"`
	WillingToRelocate            bool     `mapstructure:"willing_to_relocate" json:"willing_to_relocate"`
	RelocationAssistanceRequired bool     `mapstructure:"relocation_assistance_required" json:"relocation_assistance_required"`
	MaxCommuteMinutes            int      `mapstructure:"max_commute_minutes" json:"max_commute_minutes" validate:"min=0"`
}

type Compensation struct {
	MinimumSalary    float64 `mapstructure:"minimum_salary" json:"minimum_salary" validate:"min=0"`
	TargetSalary     float64 `mapstructure:"target_salary" json:"target_salary" validate:"gtefield=MinimumSalary"`
	IdealSalary      float64 `mapstructure:"ideal_salary" json:"ideal_salary" validate:"gtefield=TargetSalary"`
	SalaryImportance int     `mapstructure:"salary_importance" json:"salary_importance" validate:"min=0,max=100"`
}

type WorkStyle struct {
	TravelTolerancePercent int  `mapstructure:"travel_tolerance_percent" json:"travel_tolerance_percent" validate:"min=0,max=100"`
	OvertimeTolerance      int  `mapstructure:"overtime_tolerance" json:"overtime_tolerance" validate:"min=0,max=100"`
	ShiftWorkAcceptable    bool `mapstructure:"shift_work_acceptable" json:"shift_work_acceptable"`
	WeekendWorkAcceptable  bool `mapstructure:"weekend_work_acceptable" json:"weekend_work_acceptable"`
}

// Neutral returns a profile where every score is NeutralScore.
func Neutral() *Profile {
	p := &Profile{
		EmploymentTypeScores:  fill(EmploymentTypes, NeutralScore),
		WorkArrangementScores: fill(WorkArrangements, NeutralScore),
		ResponsibilityScores:  fill(ResponsibilityLevels, NeutralScore),
		CareerGoals:           fill(CareerGoals, NeutralScore),
		Compensation: Compensation{
			SalaryImportance: NeutralScore,
		},
		WorkStyle: WorkStyle{
			TravelTolerancePercent: NeutralScore,
			OvertimeTolerance:      NeutralScore,
		},
	}
	return p
}

// Decode builds a profile from loosely typed data such as a parsed YAML
// document or a viper sub-tree. Fields that are not present keep their
// neutral defaults, numbers given as strings are coerced, and the result is
// normalized and validated.
func Decode(raw map[string]any) (*Profile, error) {
	p := Neutral()
	// Score maps start empty so user keys never mix with the neutral ones.
	// Normalize fills whatever is still missing.
	p.EmploymentTypeScores = nil
	p.WorkArrangementScores = nil
	p.ResponsibilityScores = nil
	p.CareerGoals = nil

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating profile decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}

	p.Normalize()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Load reads a YAML or JSON profile file. A top-level "profile" key is
// unwrapped when present so the config file layout can be reused.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("reading profile file %q: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing profile file %q: %w", path, err)
	}

	if nested, ok := raw["profile"].(map[string]any); ok {
		raw = nested
	}

	return Decode(raw)
}

// Normalize clamps every numeric field into its declared range and fills
// missing category keys with NeutralScore. Unknown keys are left for
// Validate to report.
func (p *Profile) Normalize() {
	p.EmploymentTypeScores = normalizeScores(p.EmploymentTypeScores, EmploymentTypes)
	p.WorkArrangementScores = normalizeScores(p.WorkArrangementScores, WorkArrangements)
	p.ResponsibilityScores = normalizeScores(p.ResponsibilityScores, ResponsibilityLevels)
	p.CareerGoals = normalizeScores(p.CareerGoals, CareerGoals)

	p.Location.PreferredStates = normalizeStates(p.Location.PreferredStates)
	p.Location.MaxCommuteMinutes = max(p.Location.MaxCommuteMinutes, 0)

	c := &p.Compensation
	c.MinimumSalary = max(c.MinimumSalary, 0)
	c.TargetSalary = max(c.TargetSalary, 0)
	c.IdealSalary = max(c.IdealSalary, 0)
	// A missing ideal salary falls back to the highest stated amount and a
	// missing target sits halfway between minimum and ideal.
	if c.IdealSalary == 0 {
		c.IdealSalary = max(c.MinimumSalary, c.TargetSalary)
	}
	if c.TargetSalary == 0 {
		c.TargetSalary = (c.MinimumSalary + c.IdealSalary) / 2
	}
	c.SalaryImportance = Clamp(c.SalaryImportance)

	p.WorkStyle.TravelTolerancePercent = Clamp(p.WorkStyle.TravelTolerancePercent)
	p.WorkStyle.OvertimeTolerance = Clamp(p.WorkStyle.OvertimeTolerance)
}

// Clamp limits a score to [0,100].
func Clamp(v int) int {
	return min(max(v, 0), 100)
}

// PrefersState reports whether state is one of the preferred states.
func (p *Profile) PrefersState(state string) bool {
	state = strings.ToUpper(strings.TrimSpace(state))
	for _, s := range p.Location.PreferredStates {
		if s == state {
			return true
		}
	}
	return false
}

func fill[K ~string](keys []K, v int) map[K]int {
	m := make(map[K]int, len(keys))
	for _, k := range keys {
		m[k] = v
	}
	return m
}

// normalizeScores folds keys to lower case. When several spellings fold to
// the same key the exact spelling wins, then the first in sorted order.
func normalizeScores[K ~string](scores map[K]int, keys []K) map[K]int {
	raw := make([]K, 0, len(scores))
	for k := range scores {
		raw = append(raw, k)
	}
	slices.Sort(raw)

	result := make(map[K]int, len(keys))
	exact := make(map[K]bool, len(scores))
	for _, k := range raw {
		key := K(strings.ToLower(strings.TrimSpace(string(k))))
		if _, seen := result[key]; seen && (exact[key] || k != key) {
			continue
		}
		result[key] = Clamp(scores[k])
		exact[key] = k == key
	}
	for _, k := range keys {
		if _, ok := result[k]; !ok {
			result[k] = NeutralScore
		}
	}
	return result
}

func normalizeStates(states []string) []string {
	seen := make(map[string]struct{}, len(states))
	result := make([]string, 0, len(states))
	for _, s := range states {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}
