// Package filtering drops evaluated postings that do not clear configured thresholds.
package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/job-fit/internal/evaluation"
	"github.com/spigell/job-fit/internal/logger"
)

// Filter represents a single filtering step applied to evaluations.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, evals []*evaluation.Evaluation) ([]*evaluation.Evaluation, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Filtering runs an ordered list of filters.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, l *zap.Logger) *Filtering {
	return &Filtering{steps: steps, logger: logger.OrNop(l)}
}

// Steps returns the configured filters in run order.
func (f *Filtering) Steps() []Filter {
	return f.steps
}

// RunFilters executes every enabled filter in order.
func (f *Filtering) RunFilters(ctx context.Context, evals []*evaluation.Evaluation) ([]*evaluation.Evaluation, error) {
	return Run(ctx, f.steps, evals, f.logger)
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled filter, then applies them sequentially.
// The input slice is not modified.
func Run(ctx context.Context, steps []Filter, evals []*evaluation.Evaluation, l *zap.Logger) ([]*evaluation.Evaluation, error) {
	l = logger.OrNop(l)

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	current := append([]*evaluation.Evaluation(nil), evals...)
	for _, step := range steps {
		if !step.IsEnabled() {
			l.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		l.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		current = next
	}

	return current, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
