// Package evaluation scores batches of postings against one profile and resume.
package evaluation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/job-fit/internal/ai"
	"github.com/spigell/job-fit/internal/fit"
	"github.com/spigell/job-fit/internal/logger"
	"github.com/spigell/job-fit/internal/posting"
	"github.com/spigell/job-fit/internal/profile"
	"github.com/spigell/job-fit/internal/skills"
)

const defaultWorkers = 4

// Document is one raw posting to evaluate.
type Document struct {
	// Source names where the text came from, such as a file path.
	Source string
	Text   string
}

// Evaluation holds every result computed for one posting.
type Evaluation struct {
	Source  string         `json:"source"`
	Posting posting.Record `json:"posting"`
	Fit     fit.Result     `json:"job_fit"`
	Skills  skills.Result  `json:"skills_match"`
	// Review is the optional narrative review. It never changes the scores.
	Review *ai.Review `json:"review,omitempty"`
}

// Evaluator scores postings. It is safe for concurrent use since scoring
// only reads the profile and resume.
type Evaluator struct {
	profile   *profile.Profile
	resume    []string
	workers   int
	extractor *posting.Extractor
	logger    *zap.Logger
}

// New creates an evaluator. A nil profile is replaced by the neutral profile
// and workers below one fall back to a small default.
func New(p *profile.Profile, resumeSkills []string, workers int, l *zap.Logger) *Evaluator {
	if p == nil {
		p = profile.Neutral()
	}
	if workers < 1 {
		workers = defaultWorkers
	}
	l = logger.OrNop(l)

	return &Evaluator{
		profile:   p,
		resume:    append([]string(nil), resumeSkills...),
		workers:   workers,
		extractor: posting.NewExtractor(l),
		logger:    l,
	}
}

// EvaluateOne extracts and scores a single document.
func (e *Evaluator) EvaluateOne(doc Document) *Evaluation {
	record := e.extractor.Extract(doc.Source, doc.Text)
	eval := e.Score(doc.Source, record)

	e.logger.Info("posting evaluated", append(
		logger.PostingFields(doc.Source, record.Title),
		logger.EvaluationFields(eval.Fit.Score, eval.Skills.Score, eval.Fit.LowConfidence)...,
	)...)

	return eval
}

// Score evaluates an already extracted posting record.
func (e *Evaluator) Score(source string, record posting.Record) *Evaluation {
	return &Evaluation{
		Source:  source,
		Posting: record,
		Fit:     fit.Score(e.profile, record),
		Skills:  skills.Score(e.resume, record),
	}
}

// Evaluate scores every document in parallel and returns the evaluations in
// input order. Documents without text are rejected before any work starts.
func (e *Evaluator) Evaluate(ctx context.Context, docs []Document) ([]*Evaluation, error) {
	for i, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			return nil, fmt.Errorf("posting %d (%s) has no text", i, doc.Source)
		}
	}

	results := make([]*Evaluation, len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = e.EvaluateOne(doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating postings: %w", err)
	}

	e.logger.Debug("postings evaluated", zap.Int("count", len(results)), zap.Int("workers", e.workers))

	return results, nil
}

// Sort orders evaluations by fit score, then skills score, both descending.
// Ties keep their input order.
func Sort(evals []*Evaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		if evals[i].Fit.Score != evals[j].Fit.Score {
			return evals[i].Fit.Score > evals[j].Fit.Score
		}
		return evals[i].Skills.Score > evals[j].Skills.Score
	})
}

// AttachReviews asks the reviewer about every evaluation in turn. A failed
// review is logged and left empty. Scores are never touched.
func AttachReviews(ctx context.Context, reviewer ai.Reviewer, evals []*Evaluation, l *zap.Logger) {
	if reviewer == nil {
		return
	}
	l = logger.OrNop(l)

	for _, eval := range evals {
		if ctx.Err() != nil {
			return
		}

		review, err := reviewer.Review(ctx, ai.Input{
			Source:  eval.Source,
			Posting: eval.Posting,
			Fit:     eval.Fit,
			Skills:  eval.Skills,
		})
		if err != nil {
			logger.WithPostingFields(l, eval.Source, eval.Posting.Title).Warn("AI review failed", zap.Error(err))
			continue
		}
		eval.Review = review
	}
}
