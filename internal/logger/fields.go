package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSource is the structured log field key for where a posting came from (file name or "inline").
	FieldSource = "posting_source"
	// FieldTitle is the structured log field key for the extracted posting title.
	FieldTitle = "posting_title"
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldSession is the structured log field key for an interview session id.
	FieldSession = "session_id"
	// FieldFitScore is the structured log field key for a job fit score.
	FieldFitScore = "fit_score"
	// FieldSkillsScore is the structured log field key for a skills match score.
	FieldSkillsScore = "skills_score"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PostingFields describes a posting by its source and title.
func PostingFields(source, title string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSource, Value: source},
		StringField{Key: FieldTitle, Value: title},
	)
}

// AIFields describes the AI provider and model. Empty values are dropped.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithPostingFields attaches posting fields to the provided logger.
func WithPostingFields(logger *zap.Logger, source, title string) *zap.Logger {
	return WithFields(logger, PostingFields(source, title)...)
}

// WithAIFields attaches the AI provider fields to the provided logger.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, AIFields(provider, model)...)
}

// EvaluationFields describes the scores of one evaluated posting.
func EvaluationFields(fitScore, skillsScore int, lowConfidence bool) []zap.Field {
	return []zap.Field{
		zap.Int(FieldFitScore, fitScore),
		zap.Int(FieldSkillsScore, skillsScore),
		zap.Bool("low_confidence", lowConfidence),
	}
}
