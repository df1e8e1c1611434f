// Package session stores a finished interview and its recommendations as a JSON document.
package session

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spigell/job-fit/internal/interview"
	"github.com/spigell/job-fit/internal/recommend"
)

//go:embed session.schema.json
var schemaJSON string

var schema = mustSchema(schemaJSON)

func mustSchema(s string) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("session schema is invalid: %v", err))
	}
	return compiled
}

// Analysis summarizes the interview at the time it was saved.
type Analysis struct {
	State         interview.State            `json:"state"`
	AnsweredCount int                        `json:"answered_count"`
	SkippedCount  int                        `json:"skipped_count"`
	Categories    map[interview.Category]int `json:"categories,omitempty"`
	Keywords      []string                   `json:"keywords,omitempty"`
}

type Record struct {
	ID                     string               `json:"id"`
	CreatedAt              time.Time            `json:"created_at"`
	Responses              []interview.Response `json:"responses"`
	Analysis               Analysis             `json:"analysis"`
	JobRecommendations     []recommend.Result   `json:"job_recommendations"`
	CompanyRecommendations []recommend.Result   `json:"company_recommendations"`
}

// New captures the session and, when present, its recommendations.
func New(s *interview.Session, recs *recommend.Recommendations) *Record {
	responses := s.Snapshot()

	r := &Record{
		ID:                     uuid.NewString(),
		CreatedAt:              time.Now().UTC().Truncate(time.Second),
		Responses:              responses,
		JobRecommendations:     []recommend.Result{},
		CompanyRecommendations: []recommend.Result{},
		Analysis: Analysis{
			State:         s.State(),
			AnsweredCount: s.AnsweredCount(),
			SkippedCount:  s.SkippedCount(),
			Categories:    answeredByCategory(responses),
		},
	}

	if recs != nil {
		r.JobRecommendations = recs.Roles
		r.CompanyRecommendations = recs.Companies
		r.Analysis.Keywords = recs.Keywords
	}
	return r
}

func answeredByCategory(responses []interview.Response) map[interview.Category]int {
	counts := make(map[interview.Category]int)
	for _, r := range responses {
		if r.Skipped() {
			continue
		}
		if q, ok := interview.QuestionByID(r.QuestionID); ok {
			counts[q.Category]++
		}
	}
	return counts
}

// Session rebuilds an interview session from the saved responses.
func (r *Record) Session() (*interview.Session, error) {
	s := interview.NewSession()
	if err := s.Restore(r.Responses); err != nil {
		return nil, err
	}
	if r.Analysis.State == interview.ResultsReady {
		if err := s.MarkResultsReady(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// FileName returns the timestamped name a session saved at now is written to.
func FileName(now time.Time) string {
	return "interview-" + now.UTC().Format("20060102-150405") + ".json"
}

// Save writes the record as indented JSON, creating parent directories.
func (r *Record) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session directory: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Load reads and validates a session document.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	r, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// SchemaError lists every violation of the session schema.
type SchemaError struct {
	Errors []FieldError
}

type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "session document is invalid: " + strings.Join(parts, "; ")
}

// Decode validates data against the session schema before decoding it.
func Decode(data []byte) (*Record, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}

	if !result.Valid() {
		schemaErr := &SchemaError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			schemaErr.Errors = append(schemaErr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return nil, schemaErr
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &r, nil
}
