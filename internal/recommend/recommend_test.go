package recommend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/job-fit/internal/catalog"
	"github.com/spigell/job-fit/internal/interview"
)

const testCatalog = `
roles:
  - title: Backend Engineer
    seniority: senior
    track: ic
    technical_depth: 5
    problem_types: [scaling_systems]
companies:
  - name: Gamma
    type: enterprise
    growth_stage: public
    industries: [gaming]
    work_style: onsite
    values: [stability]
  - name: Alpha
    type: startup
    growth_stage: early
    industries: [fintech]
    work_style: remote
    values: [ownership]
  - name: Beta
    type: startup
    growth_stage: early
    industries: [fintech, developer_tools]
    work_style: remote
    values: [ownership]
`

func defaultAnswer(q interview.Question) interview.Answer {
	switch q.Kind {
	case interview.KindScale:
		return interview.Scale{Value: q.Min}
	case interview.KindMulti:
		return interview.MultiChoice{Choices: []string{q.Choices[0].Value}}
	default:
		return interview.SingleChoice{Value: q.Choices[0].Value}
	}
}

// newSession answers every question, using overrides where given and
// skipping the listed ids.
func newSession(t *testing.T, overrides map[string]interview.Answer, skip ...string) *interview.Session {
	t.Helper()

	skipped := make(map[string]bool, len(skip))
	for _, id := range skip {
		skipped[id] = true
	}

	s := interview.NewSession()
	for _, q := range interview.Questions() {
		if skipped[q.ID] {
			require.NoError(t, s.Skip(q.ID))
			continue
		}
		a, ok := overrides[q.ID]
		if !ok {
			a = defaultAnswer(q)
		}
		require.NoError(t, s.Record(q.ID, a))
	}
	return s
}

func companyAnswers() map[string]interview.Answer {
	return map[string]interview.Answer{
		"q08": interview.SingleChoice{Value: "startup"},
		"q09": interview.SingleChoice{Value: "scaleup"},
		"q11": interview.SingleChoice{Value: "seed"},
		"q12": interview.MultiChoice{Choices: []string{"fintech"}},
		"q13": interview.SingleChoice{Value: "climate"},
		"q14": interview.SingleChoice{Value: "remote"},
		"q16": interview.MultiChoice{Choices: []string{"ownership"}},
		"q17": interview.SingleChoice{Value: "learning"},
		"q18": interview.SingleChoice{Value: "early"},
	}
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	return New(c)
}

func names(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Name)
	}
	return out
}

func TestRecommendCompanies_TiesKeepCatalogOrder(t *testing.T) {
	s := newSession(t, companyAnswers(), "q10")

	results, err := testEngine(t).RecommendCompanies(s)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, names(results))
	assert.Equal(t, 72, results[0].Score)
	assert.Equal(t, 72, results[1].Score)
	assert.Less(t, results[2].Score, 72)
}

func TestRecommendCompanies_Reasons(t *testing.T) {
	s := newSession(t, companyAnswers(), "q10")

	results, err := testEngine(t).RecommendCompanies(s)
	require.NoError(t, err)

	alpha := results[0]
	assert.Equal(t, catalog.KindCompany, alpha.Kind)
	assert.Equal(t, []string{
		`work environment: your answer "Startup" to q08 matches startup`,
		`work environment: your answer "Small teams with clear ownership" to q09 is close to startup`,
		`growth stage: your answer "A lot, I want the upside" to q11 is close to early`,
		`industry: your answer "Fintech" to q12 matches fintech`,
		`work location: your answer "Remote" to q14 matches remote`,
		`values: your answer "Ownership" to q16 matches ownership`,
		`growth stage: your answer "Mostly equity upside" to q18 matches early`,
	}, alpha.Reasons)

	for _, r := range alpha.Reasons {
		assert.NotContains(t, r, "q13")
		assert.NotContains(t, r, "q17")
	}
}

func TestRecommend_SkippedDimensionsAreIgnored(t *testing.T) {
	companyQuestions := []string{"q08", "q09", "q10", "q11", "q12", "q13", "q14", "q16", "q17", "q18"}

	s := newSession(t, nil, companyQuestions...)
	results, err := testEngine(t).RecommendCompanies(s)
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, 0, r.Score)
		assert.Empty(t, r.Reasons)
	}
	assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, names(results))

	// Skipping a mismatching question raises the score instead of lowering it.
	all := newSession(t, companyAnswers())
	fewer := newSession(t, companyAnswers(), "q13", "q17")
	e := testEngine(t)
	withAll, err := e.RecommendCompanies(all)
	require.NoError(t, err)
	withFewer, err := e.RecommendCompanies(fewer)
	require.NoError(t, err)
	assert.Greater(t, withFewer[0].Score, withAll[0].Score)
}

func TestRecommend_RequiresCompletedInterview(t *testing.T) {
	e := New(nil)
	s := interview.NewSession()

	_, err := e.RecommendRoles(s)
	assert.ErrorIs(t, err, interview.ErrIncompleteInterview)

	for _, q := range interview.Questions()[:19] {
		require.NoError(t, s.Record(q.ID, defaultAnswer(q)))
	}
	_, err = e.RecommendCompanies(s)
	assert.ErrorIs(t, err, interview.ErrIncompleteInterview)
	_, err = e.Run(s)
	assert.ErrorIs(t, err, interview.ErrIncompleteInterview)
	assert.Equal(t, interview.InProgress, s.State())

	_, err = e.RecommendRoles(nil)
	assert.ErrorIs(t, err, interview.ErrIncompleteInterview)

	require.NoError(t, s.Skip("q20"))
	_, err = e.RecommendRoles(s)
	assert.NoError(t, err)
}

func TestRun_DefaultCatalog(t *testing.T) {
	s := newSession(t, map[string]interview.Answer{
		"q01": interview.SingleChoice{Value: "senior"},
		"q03": interview.Scale{Value: 5},
		"q04": interview.MultiChoice{Choices: []string{"infrastructure", "scaling_systems"}},
		"q05": interview.SingleChoice{Value: "ic"},
		"q19": interview.Scale{Value: 5},
	})

	recs, err := New(nil).Run(s)
	require.NoError(t, err)
	assert.Equal(t, interview.ResultsReady, s.State())

	require.Len(t, recs.Roles, TopRoles)
	require.Len(t, recs.Companies, TopCompanies)
	assert.Equal(t, "Senior Software Engineer", recs.Roles[0].Name)
	assert.Equal(t, 94, recs.Roles[0].Score)

	for _, list := range [][]Result{recs.Roles, recs.Companies} {
		for i, r := range list {
			assert.GreaterOrEqual(t, r.Score, 0)
			assert.LessOrEqual(t, r.Score, 100)
			if i > 0 {
				assert.GreaterOrEqual(t, list[i-1].Score, r.Score)
			}
		}
	}

	again, err := New(nil).Run(s)
	require.NoError(t, err)
	assert.Equal(t, recs, again)
}

func TestReanswerChangesOnlyTheQuestionDimension(t *testing.T) {
	e := New(nil)
	s := newSession(t, map[string]interview.Answer{"q05": interview.SingleChoice{Value: "ic"}})

	beforeCompanies, err := e.RecommendCompanies(s)
	require.NoError(t, err)
	beforeRoles := scoreAll(e, s, catalog.KindRole)

	_, err = e.Run(s)
	require.NoError(t, err)
	require.NoError(t, s.Record("q05", interview.SingleChoice{Value: "management"}))
	assert.Equal(t, interview.Completed, s.State())

	afterCompanies, err := e.RecommendCompanies(s)
	require.NoError(t, err)
	afterRoles := scoreAll(e, s, catalog.KindRole)

	assert.Equal(t, beforeCompanies, afterCompanies)

	changed := false
	for i := range beforeRoles {
		if beforeRoles[i].Score != afterRoles[i].Score {
			changed = true
		}
		assert.Equal(t, withoutDimension(beforeRoles[i].Reasons, "leadership"), withoutDimension(afterRoles[i].Reasons, "leadership"))
	}
	assert.True(t, changed)
}

func scoreAll(e *Engine, s *interview.Session, kind catalog.Kind) []Result {
	responses := answered(s, kind)
	var out []Result
	for _, entity := range e.catalog.Entities(kind) {
		out = append(out, score(entity, responses))
	}
	return out
}

func withoutDimension(reasons []string, dimension string) []string {
	out := []string{}
	for _, r := range reasons {
		if !strings.HasPrefix(r, dimension+":") {
			out = append(out, r)
		}
	}
	return out
}

func TestBuildKeywords(t *testing.T) {
	e := testEngine(t)
	roles := []Result{{Name: "Backend Engineer"}, {Name: "backend engineer"}}
	companies := []Result{{Name: "Beta"}, {Name: "Alpha"}, {Name: "Unknown Co"}}

	assert.Equal(t, []string{
		"Backend Engineer",
		"Beta", "Alpha", "Unknown Co",
		"fintech", "developer tools",
		"founding team", "remote", "early stage", "high growth",
	}, e.BuildKeywords(roles, companies))

	assert.Equal(t, Modifiers, e.BuildKeywords(nil, nil))
}

func TestBuildKeywords_Limits(t *testing.T) {
	e := New(nil)
	var roles, companies []Result
	for _, r := range e.catalog.Roles {
		roles = append(roles, Result{Name: r.Title})
	}
	for _, c := range e.catalog.Companies {
		companies = append(companies, Result{Name: c.Name})
	}

	keywords := e.BuildKeywords(roles, companies)
	assert.Equal(t, "Junior Software Engineer", keywords[0])
	assert.NotContains(t, keywords, roles[5].Name)
	assert.Contains(t, keywords, companies[9].Name)
	assert.NotContains(t, keywords, companies[10].Name)
	assert.Equal(t, Modifiers, keywords[len(keywords)-len(Modifiers):])
}
