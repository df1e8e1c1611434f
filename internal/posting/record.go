// Package posting turns free-text job descriptions into structured records.
package posting

import (
	"github.com/spigell/job-fit/internal/profile"
)

// Unknown marks an enum field the extractor could not determine.
const Unknown = "unknown"

const (
	UnknownEmployment  profile.EmploymentType  = Unknown
	UnknownArrangement profile.WorkArrangement = Unknown
)

type Seniority string

const (
	SeniorityEntry         Seniority = "entry"
	SeniorityMid           Seniority = "mid"
	SenioritySenior        Seniority = "senior"
	SeniorityLead          Seniority = "lead"
	SeniorityManager       Seniority = "manager"
	SenioritySeniorManager Seniority = "senior_manager"
	SeniorityDirector      Seniority = "director"
	SeniorityExecutive     Seniority = "executive"
	SeniorityUnknown       Seniority = Unknown
)

// ResponsibilityLevel maps a seniority signal to one of the six profile
// responsibility levels. ok is false for an unknown seniority.
func (s Seniority) ResponsibilityLevel() (profile.ResponsibilityLevel, bool) {
	switch s {
	case SeniorityEntry, SeniorityMid, SenioritySenior:
		return profile.IndividualContributor, true
	case SeniorityLead:
		return profile.TeamLead, true
	case SeniorityManager:
		return profile.Manager, true
	case SenioritySeniorManager:
		return profile.SeniorManager, true
	case SeniorityDirector:
		return profile.Director, true
	case SeniorityExecutive:
		return profile.Executive, true
	default:
		return "", false
	}
}

// Flag is a tri-state posting statement.
type Flag string

const (
	FlagUnknown Flag = Unknown
	// FlagYes means the posting states the requirement or offer.
	FlagYes Flag = "yes"
	// FlagNo means the posting explicitly rules it out.
	FlagNo Flag = "no"
)

// SalaryRange is an annual salary range. Known is false when the posting
// states no salary.
type SalaryRange struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Known bool    `json:"known"`
}

// Midpoint returns the middle of the range.
func (s SalaryRange) Midpoint() float64 {
	return (s.Low + s.High) / 2
}

// Requirement is a stated percentage requirement such as travel.
type Requirement struct {
	Stated  bool `json:"stated"`
	Percent int  `json:"percent"`
}

// Record is the structured form of a posting. It is treated as immutable
// once extracted. Every field carries an explicit unknown sentinel.
type Record struct {
	Title           string                  `json:"title"`
	EmploymentType  profile.EmploymentType  `json:"employment_type"`
	WorkArrangement profile.WorkArrangement `json:"work_arrangement"`
	// LocationState is a two-letter state code, or Unknown.
	LocationState  string      `json:"location_state"`
	Salary         SalaryRange `json:"salary_range"`
	Seniority      Seniority   `json:"seniority_level"`
	RequiredSkills []string    `json:"required_skills"`
	// Keywords are industry terms found in the posting outside the skill list.
	Keywords    []string    `json:"keywords"`
	Travel      Requirement `json:"travel"`
	Overtime    Flag        `json:"overtime"`
	ShiftWork   Flag        `json:"shift_work"`
	WeekendWork Flag        `json:"weekend_work"`
	Relocation  Flag        `json:"relocation_assistance"`
}

// Empty returns a record where every field is unknown.
func Empty() Record {
	return Record{
		EmploymentType:  UnknownEmployment,
		WorkArrangement: UnknownArrangement,
		LocationState:   Unknown,
		Seniority:       SeniorityUnknown,
		RequiredSkills:  []string{},
		Keywords:        []string{},
		Overtime:        FlagUnknown,
		ShiftWork:       FlagUnknown,
		WeekendWork:     FlagUnknown,
		Relocation:      FlagUnknown,
	}
}

func (r Record) HasEmploymentType() bool {
	return r.EmploymentType != "" && r.EmploymentType != UnknownEmployment
}

func (r Record) HasWorkArrangement() bool {
	return r.WorkArrangement != "" && r.WorkArrangement != UnknownArrangement
}

func (r Record) HasLocation() bool {
	return r.LocationState != "" && r.LocationState != Unknown
}

func (r Record) HasSeniority() bool {
	return r.Seniority != "" && r.Seniority != SeniorityUnknown
}
