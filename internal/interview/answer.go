package interview

import (
	"fmt"
	"strconv"
)

// Answer is one of SingleChoice, MultiChoice or Scale.
type Answer interface {
	Kind() Kind
	// Values returns the answer as dimension values for matching.
	Values() []string
	isAnswer()
}

type SingleChoice struct {
	Value string
}

type MultiChoice struct {
	Choices []string
}

type Scale struct {
	Value int
}

func (SingleChoice) Kind() Kind { return KindSingle }
func (MultiChoice) Kind() Kind  { return KindMulti }
func (Scale) Kind() Kind        { return KindScale }

func (a SingleChoice) Values() []string { return []string{a.Value} }
func (a MultiChoice) Values() []string  { return append([]string(nil), a.Choices...) }
func (a Scale) Values() []string        { return []string{strconv.Itoa(a.Value)} }

func (SingleChoice) isAnswer() {}
func (MultiChoice) isAnswer()  {}
func (Scale) isAnswer()        {}

// ValidationError reports an answer that does not fit its question.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid answer for %s: %s", e.QuestionID, e.Reason)
}

func invalid(q Question, format string, args ...any) error {
	return &ValidationError{QuestionID: q.ID, Reason: fmt.Sprintf(format, args...)}
}

// Check validates an answer against the question. Extra selections are
// rejected, never truncated.
func (q Question) Check(a Answer) error {
	if a == nil {
		return invalid(q, "answer is empty")
	}
	if a.Kind() != q.Kind {
		return invalid(q, "expected %s answer, got %s", q.Kind, a.Kind())
	}

	switch v := a.(type) {
	case SingleChoice:
		if _, ok := q.choice(v.Value); !ok {
			return invalid(q, "unknown choice %q", v.Value)
		}
	case MultiChoice:
		if len(v.Choices) == 0 {
			return invalid(q, "select at least one choice")
		}
		if len(v.Choices) > MaxSelections {
			return invalid(q, "at most %d choices allowed, got %d", MaxSelections, len(v.Choices))
		}
		seen := make(map[string]struct{}, len(v.Choices))
		for _, c := range v.Choices {
			if _, ok := q.choice(c); !ok {
				return invalid(q, "unknown choice %q", c)
			}
			if _, ok := seen[c]; ok {
				return invalid(q, "choice %q selected twice", c)
			}
			seen[c] = struct{}{}
		}
	case Scale:
		if v.Value < q.Min || v.Value > q.Max {
			return invalid(q, "scale value %d is outside %d..%d", v.Value, q.Min, q.Max)
		}
	}
	return nil
}
