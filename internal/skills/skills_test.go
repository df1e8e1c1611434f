package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/job-fit/internal/posting"
)

func record(required []string, keywords ...string) posting.Record {
	r := posting.Empty()
	r.RequiredSkills = required
	if keywords != nil {
		r.Keywords = keywords
	}
	return r
}

func TestScore_EmptyRequirementsIsNeutral(t *testing.T) {
	res := Score([]string{"Go", "fintech"}, record(nil, "fintech"))

	assert.Equal(t, EmptyRequirementsScore, res.Score)
	assert.Equal(t, BandMedium, res.Band)
	assert.Zero(t, res.KeywordBonus)
	assert.Empty(t, res.Matched)
	assert.Empty(t, res.Missing)
}

func TestScore_IdenticalSetsScore100(t *testing.T) {
	required := []string{"Go", "PostgreSQL", "Kubernetes"}
	res := Score(required, record(required))

	assert.Equal(t, 100, res.Score)
	assert.Equal(t, required, res.Matched)
	assert.Empty(t, res.Missing)
	assert.Equal(t, BandHigh, res.Band)
}

func TestScore_NormalizesCaseSpacesAndAliases(t *testing.T) {
	res := Score(
		[]string{"  GOLANG ", "k8s", "machine   learning", "Postgres"},
		record([]string{"Go", "Kubernetes", "Machine Learning", "PostgreSQL", "Terraform"}),
	)

	assert.Equal(t, []string{"Go", "Kubernetes", "Machine Learning", "PostgreSQL"}, res.Matched)
	assert.Equal(t, []string{"Terraform"}, res.Missing)
	assert.Equal(t, 80, res.Score)
}

func TestScore_PartialOverlapRounds(t *testing.T) {
	res := Score([]string{"python"}, record([]string{"Python", "SQL", "Airflow"}))

	assert.Equal(t, 33, res.Score)
	assert.Equal(t, BandLow, res.Band)
	assert.Equal(t, []string{"SQL", "Airflow"}, res.Missing)
}

func TestScore_DuplicateRequirementsCountOnce(t *testing.T) {
	res := Score([]string{"go"}, record([]string{"Go", "golang", "Docker"}))

	assert.Equal(t, []string{"Go"}, res.Matched)
	assert.Equal(t, []string{"Docker"}, res.Missing)
	assert.Equal(t, 50, res.Score)
}

func TestScore_KeywordBonus(t *testing.T) {
	required := []string{"Go", "Docker", "Kafka", "Redis"}

	res := Score([]string{"go", "docker", "fintech", "payments"}, record(required, "fintech", "payments", "gaming"))
	assert.Equal(t, 4, res.KeywordBonus)
	assert.Equal(t, 54, res.Score)
	assert.Equal(t, BandMedium, res.Band)

	// Keywords that are already required skills earn no bonus.
	res = Score([]string{"go", "docker"}, record(required, "docker"))
	assert.Zero(t, res.KeywordBonus)
	assert.Equal(t, 50, res.Score)
}

func TestScore_KeywordBonusIsCapped(t *testing.T) {
	keywords := []string{"fintech", "banking", "payments", "insurance", "saas", "e-commerce", "logistics"}
	resume := append([]string{"go"}, keywords...)

	res := Score(resume, record([]string{"Go", "Rust"}, keywords...))
	assert.Equal(t, 10, res.KeywordBonus)
	assert.Equal(t, 60, res.Score)

	res = Score(resume, record([]string{"Go"}, keywords...))
	assert.Equal(t, 100, res.Score)
}

func TestScore_IsIdempotent(t *testing.T) {
	r := record([]string{"Go", "AWS"}, "saas")
	resume := []string{"go", "saas"}

	assert.Equal(t, Score(resume, r), Score(resume, r))
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Golang":                "go",
		" Node.JS ":             "node.js",
		"Amazon  Web Services":  "aws",
		"C#":                    "c#",
		".NET":                  ".net",
		"Kubernetes,":           "kubernetes",
		"":                      "",
		"Google Cloud Platform": "gcp",
	}

	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandHigh, BandFor(65))
	assert.Equal(t, BandMedium, BandFor(64))
	assert.Equal(t, BandMedium, BandFor(40))
	assert.Equal(t, BandLow, BandFor(39))
}
