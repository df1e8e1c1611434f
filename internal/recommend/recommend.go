// Package recommend ranks catalog roles and companies against interview responses.
package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spigell/job-fit/internal/catalog"
	"github.com/spigell/job-fit/internal/interview"
	"github.com/spigell/job-fit/internal/utils"
)

const (
	TopRoles     = 10
	TopCompanies = 15

	keywordRoles             = 5
	keywordCompanies         = 10
	keywordIndustryCompanies = 5
)

// Modifiers are appended to every keyword set.
var Modifiers = []string{"founding team", "remote", "early stage", "high growth"}

// Result is one ranked catalog entry. Reasons are ordered by question.
type Result struct {
	Kind    catalog.Kind `json:"kind"`
	Name    string       `json:"name"`
	Score   int          `json:"score"`
	Reasons []string     `json:"reasons"`
}

type Recommendations struct {
	Roles     []Result `json:"roles"`
	Companies []Result `json:"companies"`
	Keywords  []string `json:"keywords"`
}

type Engine struct {
	catalog *catalog.Catalog
}

// New creates an engine over c. A nil catalog selects the embedded one.
func New(c *catalog.Catalog) *Engine {
	if c == nil {
		c = catalog.Default()
	}
	return &Engine{catalog: c}
}

func (e *Engine) RecommendRoles(s *interview.Session) ([]Result, error) {
	return e.rank(s, catalog.KindRole, TopRoles)
}

func (e *Engine) RecommendCompanies(s *interview.Session) ([]Result, error) {
	return e.rank(s, catalog.KindCompany, TopCompanies)
}

// Run computes roles, companies and keywords, then marks the session as
// having results.
func (e *Engine) Run(s *interview.Session) (*Recommendations, error) {
	roles, err := e.RecommendRoles(s)
	if err != nil {
		return nil, err
	}
	companies, err := e.RecommendCompanies(s)
	if err != nil {
		return nil, err
	}
	if err := s.MarkResultsReady(); err != nil {
		return nil, err
	}

	return &Recommendations{
		Roles:     roles,
		Companies: companies,
		Keywords:  e.BuildKeywords(roles, companies),
	}, nil
}

// BuildKeywords returns search keywords from the top results, deduplicated
// case-insensitively in order.
func (e *Engine) BuildKeywords(roles, companies []Result) []string {
	var keywords []string
	for _, r := range roles[:min(keywordRoles, len(roles))] {
		keywords = append(keywords, r.Name)
	}
	for _, c := range companies[:min(keywordCompanies, len(companies))] {
		keywords = append(keywords, c.Name)
	}
	for _, c := range companies[:min(keywordIndustryCompanies, len(companies))] {
		company, ok := e.catalog.Company(c.Name)
		if !ok {
			continue
		}
		for _, industry := range company.Industries {
			keywords = append(keywords, strings.ReplaceAll(industry, "_", " "))
		}
	}
	keywords = append(keywords, Modifiers...)

	return utils.DedupeFold(keywords)
}

type response struct {
	question interview.Question
	values   []string
}

func (e *Engine) rank(s *interview.Session, kind catalog.Kind, limit int) ([]Result, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: no session", interview.ErrIncompleteInterview)
	}
	if err := s.RequireCompleted(); err != nil {
		return nil, err
	}

	responses := answered(s, kind)
	entities := e.catalog.Entities(kind)

	results := make([]Result, 0, len(entities))
	for _, entity := range entities {
		results = append(results, score(entity, responses))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results[:min(limit, len(results))], nil
}

// answered collects non-skipped answers to questions whose dimension applies to kind.
func answered(s *interview.Session, kind catalog.Kind) []response {
	var out []response
	for _, q := range interview.Questions() {
		if q.Dimension == "" || !q.Dimension.Applies(kind) {
			continue
		}
		r, status := s.Get(q.ID)
		if status != interview.Answered {
			continue
		}
		out = append(out, response{question: q, values: r.Answer.Values()})
	}
	return out
}

func score(entity catalog.Entity, responses []response) Result {
	attributes := entity.Attributes()
	result := Result{Kind: entity.Kind(), Name: entity.DisplayName(), Reasons: []string{}}

	var matched, total float64
	for _, r := range responses {
		values, ok := attributes[r.question.Dimension]
		if !ok {
			continue
		}

		weight := float64(r.question.Weight)
		match, answer, attribute := catalog.BestMatch(r.question.Dimension, r.values, values)
		matched += match * weight
		total += weight

		if match >= catalog.PartialMatch {
			result.Reasons = append(result.Reasons, reason(r.question, match, answer, attribute))
		}
	}

	if total > 0 {
		result.Score = int(math.Round(100 * matched / total))
	}
	return result
}

func reason(q interview.Question, match float64, answer, attribute string) string {
	verb := "matches"
	if match < catalog.FullMatch {
		verb = "is close to"
	}
	dimension := strings.ReplaceAll(string(q.Dimension), "_", " ")
	return fmt.Sprintf("%s: your answer %q to %s %s %s", dimension, q.Label(answer), q.ID, verb, strings.ReplaceAll(attribute, "_", " "))
}
