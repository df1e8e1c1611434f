package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/job-fit/internal/evaluation"
	"github.com/spigell/job-fit/internal/logger"
)

const (
	MinimumFitName    = "minimum_fit"
	MinimumSkillsName = "minimum_skills"
	LowConfidenceName = "low_confidence"
)

type thresholdFilter struct {
	name    string
	minimum int
	score   func(*evaluation.Evaluation) int
	enabled bool
	reason  string
	logger  *zap.Logger
}

// NewMinimumFit creates a filter that drops postings with a job fit score below minimum.
func NewMinimumFit(minimum int, l *zap.Logger) Filter {
	return newThreshold(MinimumFitName, minimum, func(e *evaluation.Evaluation) int { return e.Fit.Score }, l)
}

// NewMinimumSkills creates a filter that drops postings with a skills match score below minimum.
func NewMinimumSkills(minimum int, l *zap.Logger) Filter {
	return newThreshold(MinimumSkillsName, minimum, func(e *evaluation.Evaluation) int { return e.Skills.Score }, l)
}

func newThreshold(name string, minimum int, score func(*evaluation.Evaluation) int, l *zap.Logger) *thresholdFilter {
	return &thresholdFilter{
		name:    name,
		minimum: minimum,
		score:   score,
		enabled: true,
		logger:  logger.OrNop(l),
	}
}

func (f *thresholdFilter) Name() string { return f.name }

func (f *thresholdFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *thresholdFilter) IsEnabled() bool { return f.enabled }

func (f *thresholdFilter) Validate() error {
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum score %d is outside 0-100", f.minimum)
	}
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, evals []*evaluation.Evaluation) ([]*evaluation.Evaluation, Step, error) {
	initial := len(evals)
	kept := make([]*evaluation.Evaluation, 0, initial)
	var dropped []string

	for _, e := range evals {
		if f.score(e) < f.minimum {
			dropped = append(dropped, e.Source)
			continue
		}
		kept = append(kept, e)
	}

	if len(dropped) > 0 {
		f.logger.Info("excluding postings below minimum score",
			zap.String("filter", f.name),
			zap.Int("minimum", f.minimum),
			zap.Strings("excluded_postings", dropped),
			zap.Int("postings_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *thresholdFilter) Status() Status {
	return Status{
		Name:    f.name,
		Enabled: f.enabled,
		Reason:  f.reason,
		Details: map[string]string{"minimum": strconv.Itoa(f.minimum)},
	}
}

type lowConfidenceFilter struct {
	enabled bool
	reason  string
	logger  *zap.Logger
}

// NewLowConfidence creates a filter that drops postings whose fit score was
// flagged as low confidence. It is disabled unless drop is set.
func NewLowConfidence(drop bool, l *zap.Logger) Filter {
	f := &lowConfidenceFilter{enabled: drop, logger: logger.OrNop(l)}
	if !drop {
		f.reason = "not requested"
	}
	return f
}

func (f *lowConfidenceFilter) Name() string { return LowConfidenceName }

func (f *lowConfidenceFilter) Disable(reason string) {
	f.enabled = false
	f.reason = reason
}

func (f *lowConfidenceFilter) IsEnabled() bool { return f.enabled }

func (f *lowConfidenceFilter) Validate() error { return nil }

func (f *lowConfidenceFilter) Apply(_ context.Context, evals []*evaluation.Evaluation) ([]*evaluation.Evaluation, Step, error) {
	initial := len(evals)
	kept := make([]*evaluation.Evaluation, 0, initial)
	var dropped []string

	for _, e := range evals {
		if e.Fit.LowConfidence {
			dropped = append(dropped, e.Source)
			continue
		}
		kept = append(kept, e)
	}

	if len(dropped) > 0 {
		f.logger.Info("excluding postings with insufficient data",
			zap.Strings("excluded_postings", dropped),
			zap.Int("postings_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *lowConfidenceFilter) Status() Status {
	return Status{Name: LowConfidenceName, Enabled: f.enabled, Reason: f.reason}
}
