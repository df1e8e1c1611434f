package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/job-fit/internal/ai"
	"github.com/spigell/job-fit/internal/logger"
	"github.com/spigell/job-fit/internal/utils"
)

const (
	defaultMaxLogLength = 200
	systemInstruction   = "You explain job fit scores. Reply with JSON only."
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
}

// Reviewer asks Gemini for a narrative review of finished scores.
type Reviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Reviewer = (*Reviewer)(nil)

func NewReviewer(generator contentGenerator, maxLogLength int, l *zap.Logger) *Reviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reviewer{
		generator: generator,
		logger:    logger.OrNop(l),
		maxLogLen: maxLogLength,
	}
}

func (r *Reviewer) Review(ctx context.Context, in ai.Input) (*ai.Review, error) {
	if r == nil || r.generator == nil {
		return nil, errors.New("gemini reviewer is not initialized")
	}

	prompt, err := buildPrompt(in)
	if err != nil {
		return nil, err
	}

	l := logger.WithPostingFields(r.logger, in.Source, in.Posting.Title)

	l.Debug("gemini review request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	l.Debug("gemini review response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, r.maxLogLen)),
	)

	review, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	review.Raw = raw

	return review, nil
}

func buildPrompt(in ai.Input) (string, error) {
	postingJSON, err := json.MarshalIndent(in.Posting, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal posting payload: %w", err)
	}
	fitJSON, err := json.MarshalIndent(in.Fit, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal fit payload: %w", err)
	}
	skillsJSON, err := json.MarshalIndent(in.Skills, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal skills payload: %w", err)
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Posting:\n{{POSTING_JSON}}\n\nFit:\n{{FIT_JSON}}\n\nSkills:\n{{SKILLS_JSON}}\n\nJSON Response:"
	}

	prompt := strings.ReplaceAll(template, "{{POSTING_JSON}}", string(postingJSON))
	prompt = strings.ReplaceAll(prompt, "{{FIT_JSON}}", string(fitJSON))
	prompt = strings.ReplaceAll(prompt, "{{SKILLS_JSON}}", string(skillsJSON))
	return prompt, nil
}

func parseResponse(raw string) (*ai.Review, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	review := &ai.Review{
		Summary:    coerceString(data["summary"]),
		Highlights: coerceStrings(data["highlights"]),
		Concerns:   coerceStrings(data["concerns"]),
	}

	if review.Summary == "" {
		return nil, errors.New("gemini response has no summary")
	}

	return review, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// coerceStrings accepts a JSON list or a single string.
func coerceStrings(v any) []string {
	var result []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				result = append(result, s)
			}
		}
	case string:
		if s := strings.TrimSpace(val); s != "" {
			result = append(result, s)
		}
	}
	return result
}
