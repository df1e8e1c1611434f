package interview

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

type State string

const (
	NotStarted   State = "NOT_STARTED"
	InProgress   State = "IN_PROGRESS"
	Completed    State = "COMPLETED"
	ResultsReady State = "RESULTS_READY"
)

// Status tells a skipped question apart from one that was never reached.
type Status int

const (
	NeverReached Status = iota
	Skipped
	Answered
)

func (s Status) String() string {
	switch s {
	case Skipped:
		return "skipped"
	case Answered:
		return "answered"
	default:
		return "never reached"
	}
}

var (
	// ErrIncompleteInterview is returned when results are requested before
	// the last question was answered or skipped.
	ErrIncompleteInterview = errors.New("interview is not completed")
	ErrUnknownQuestion     = errors.New("unknown question")
)

// Session holds the responses of one interview. Writes are serialized and
// reads may run concurrently.
type Session struct {
	mu        sync.RWMutex
	questions []Question
	index     map[string]int
	responses map[string]Response
	current   int
	state     State
	now       func() time.Time
}

type SessionOption func(*Session)

// WithClock sets the time source used for response timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		questions: Questions(),
		responses: make(map[string]Response),
		state:     NotStarted,
		now:       func() time.Time { return time.Now().UTC() },
	}
	s.index = make(map[string]int, len(s.questions))
	for i, q := range s.questions {
		s.index[q.ID] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) question(id string) (Question, error) {
	i, ok := s.index[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	return s.questions[i], nil
}

// Record stores an answer, overwriting any earlier response to the question.
func (s *Session) Record(id string, a Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(id, a, s.now())
}

// Skip marks a question as explicitly skipped.
func (s *Session) Skip(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(id, nil, s.now())
}

func (s *Session) record(id string, a Answer, at time.Time) error {
	q, err := s.question(id)
	if err != nil {
		return err
	}
	if a != nil {
		if err := q.Check(a); err != nil {
			return err
		}
		if m, ok := a.(MultiChoice); ok {
			a = MultiChoice{Choices: append([]string(nil), m.Choices...)}
		}
	}

	s.responses[id] = Response{QuestionID: id, Answer: a, Weight: q.Weight, Timestamp: at}
	s.advanceState()
	return nil
}

func (s *Session) advanceState() {
	last := s.questions[len(s.questions)-1].ID
	if _, ok := s.responses[last]; ok {
		s.state = Completed
		return
	}
	if s.state == NotStarted {
		s.state = InProgress
	}
}

// Get returns the response for a question and whether it was answered,
// skipped or never reached.
func (s *Session) Get(id string) (Response, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.responses[id]
	switch {
	case !ok:
		return Response{}, NeverReached
	case r.Skipped():
		return r, Skipped
	default:
		return r, Answered
	}
}

// AllAnswered reports whether every question has a non-skipped answer.
func (s *Session) AllAnswered() bool {
	return s.AnsweredCount() == len(s.questions)
}

func (s *Session) AnsweredCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.responses {
		if !r.Skipped() {
			count++
		}
	}
	return count
}

func (s *Session) SkippedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.responses {
		if r.Skipped() {
			count++
		}
	}
	return count
}

// Current returns the question under the pointer. ok is false once the
// pointer has moved past the last question.
func (s *Session) Current() (Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// Answer records an answer for the current question and moves forward.
func (s *Session) Answer(a Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answerCurrent(a)
}

// SkipCurrent skips the current question and moves forward.
func (s *Session) SkipCurrent() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answerCurrent(nil)
}

func (s *Session) answerCurrent(a Answer) error {
	if s.current >= len(s.questions) {
		return errors.New("no question left to answer")
	}
	if err := s.record(s.questions[s.current].ID, a, s.now()); err != nil {
		return err
	}
	s.current++
	return nil
}

// Back moves the pointer to the previous question. The state never changes.
func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Reset drops every response.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.responses = make(map[string]Response)
	s.current = 0
	s.state = NotStarted
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// RequireCompleted returns ErrIncompleteInterview unless results may be computed.
func (s *Session) RequireCompleted() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requireCompleted()
}

func (s *Session) requireCompleted() error {
	if s.state != Completed && s.state != ResultsReady {
		return fmt.Errorf("%w: state is %s", ErrIncompleteInterview, s.state)
	}
	return nil
}

// MarkResultsReady moves a completed session to RESULTS_READY.
func (s *Session) MarkResultsReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireCompleted(); err != nil {
		return err
	}
	s.state = ResultsReady
	return nil
}

// Snapshot returns the recorded responses in question order.
func (s *Session) Snapshot() []Response {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Response, 0, len(s.responses))
	for _, q := range s.questions {
		if r, ok := s.responses[q.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Restore replaces the session content with previously recorded responses.
// Timestamps are kept and the pointer moves to the first unanswered question.
func (s *Session) Restore(responses []Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for _, r := range responses {
		if err := s.record(r.QuestionID, r.Answer, r.Timestamp); err != nil {
			s.reset()
			return fmt.Errorf("restoring response: %w", err)
		}
	}

	s.current = len(s.questions)
	for i, q := range s.questions {
		if _, ok := s.responses[q.ID]; !ok {
			s.current = i
			break
		}
	}
	return nil
}
