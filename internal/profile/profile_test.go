package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeutral(t *testing.T) {
	p := Neutral()

	for _, k := range EmploymentTypes {
		assert.Equal(t, NeutralScore, p.EmploymentTypeScores[k])
	}
	for _, k := range ResponsibilityLevels {
		assert.Equal(t, NeutralScore, p.ResponsibilityScores[k])
	}
	assert.Len(t, p.CareerGoals, 6)
	require.NoError(t, p.Validate())
}

func TestDecode_CoercesAndClamps(t *testing.T) {
	raw := map[string]any{
		"employment_type_scores": map[string]any{
			"full_time": "90",
			"contract":  150,
			"temp":      -20,
		},
		"location": map[string]any{
			"preferred_states":    []any{" tx", "CA", "ca"},
			"willing_to_relocate": "true",
			"max_commute_minutes": -5,
		},
		"compensation": map[string]any{
			"minimum_salary":    70000,
			"target_salary":     85000.0,
			"ideal_salary":      "100000",
			"salary_importance": 120,
		},
	}

	p, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, 90, p.EmploymentTypeScores[FullTime])
	assert.Equal(t, 100, p.EmploymentTypeScores[Contract])
	assert.Equal(t, 0, p.EmploymentTypeScores[Temp])
	// Absent keys stay neutral.
	assert.Equal(t, NeutralScore, p.EmploymentTypeScores[PartTime])
	assert.Equal(t, NeutralScore, p.WorkArrangementScores[Remote])

	assert.Equal(t, []string{"TX", "CA"}, p.Location.PreferredStates)
	assert.True(t, p.Location.WillingToRelocate)
	assert.Equal(t, 0, p.Location.MaxCommuteMinutes)

	assert.Equal(t, 100000.0, p.Compensation.IdealSalary)
	assert.Equal(t, 100, p.Compensation.SalaryImportance)
}

func TestDecode_FoldsKeySpellings(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]any
		want   int
	}{
		{name: "upper case", scores: map[string]any{"FULL_TIME": 90}, want: 90},
		{name: "padded", scores: map[string]any{" Full_Time ": 80}, want: 80},
		{name: "exact spelling wins", scores: map[string]any{"FULL_TIME": 10, "full_time": 70, "Full_time": 30}, want: 70},
		{name: "first sorted spelling wins", scores: map[string]any{"Full_Time": 20, "FULL_TIME": 40}, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 50 {
				p, err := Decode(map[string]any{"employment_type_scores": tt.scores})
				require.NoError(t, err)
				require.Equal(t, tt.want, p.EmploymentTypeScores[FullTime])
				require.Len(t, p.EmploymentTypeScores, len(EmploymentTypes))
			}
		})
	}
}

func TestDecode_FillsMissingSalaryAnchors(t *testing.T) {
	p, err := Decode(map[string]any{
		"compensation": map[string]any{
			"minimum_salary": 60000,
			"ideal_salary":   100000,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 80000.0, p.Compensation.TargetSalary)

	p, err = Decode(map[string]any{
		"compensation": map[string]any{"minimum_salary": 60000},
	})
	require.NoError(t, err)
	assert.Equal(t, 60000.0, p.Compensation.IdealSalary)
	assert.Equal(t, 60000.0, p.Compensation.TargetSalary)
}

func TestDecode_RejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{
			name: "salary ordering",
			raw: map[string]any{"compensation": map[string]any{
				"minimum_salary": 90000, "target_salary": 80000, "ideal_salary": 100000,
			}},
			field: "compensation.target_salary",
		},
		{
			name:  "unknown employment type",
			raw:   map[string]any{"employment_type_scores": map[string]any{"freelance": 80}},
			field: "employment_type_scores[freelance]",
		},
		{
			name:  "bad state code",
			raw:   map[string]any{"location": map[string]any{"preferred_states": []any{"Texas"}}},
			field: "location.preferred_states[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			require.NotEmpty(t, verr.Fields)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestLoad_UnwrapsProfileKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `profile:
  work_arrangement_scores:
    remote: 95
    onsite: 10
  responsibility_scores:
    team_lead: 80
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 95, p.WorkArrangementScores[Remote])
	assert.Equal(t, 10, p.WorkArrangementScores[Onsite])
	assert.Equal(t, NeutralScore, p.WorkArrangementScores[Hybrid])
	assert.Equal(t, 80, p.ResponsibilityScores[TeamLead])
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	content := `{"work_style": {"travel_tolerance_percent": 25, "weekend_work_acceptable": true}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, p.WorkStyle.TravelTolerancePercent)
	assert.True(t, p.WorkStyle.WeekendWorkAcceptable)
	assert.Equal(t, NeutralScore, p.WorkStyle.OvertimeTolerance)
}

func TestPrefersState(t *testing.T) {
	p := Neutral()
	p.Location.PreferredStates = []string{"WA"}
	p.Normalize()

	assert.True(t, p.PrefersState(" wa "))
	assert.False(t, p.PrefersState("OR"))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-1))
	assert.Equal(t, 100, Clamp(101))
	assert.Equal(t, 42, Clamp(42))
}
