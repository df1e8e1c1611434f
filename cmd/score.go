package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-fit/internal/ai"
	"github.com/spigell/job-fit/internal/ai/gemini"
	"github.com/spigell/job-fit/internal/evaluation"
	"github.com/spigell/job-fit/internal/filtering"
	"github.com/spigell/job-fit/internal/input"
	"github.com/spigell/job-fit/internal/logger"
	"github.com/spigell/job-fit/internal/profile"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score job postings against your preference profile and resume skills",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringSliceP("job-file", "f", nil, "file with a job posting, can be repeated")
	scoreCmd.Flags().StringSliceP("job-text", "t", nil, "inline job posting text, can be repeated")
	scoreCmd.Flags().StringSliceP("skill", "s", nil, "resume skill in addition to the configured ones, can be repeated")
	scoreCmd.Flags().StringP("output", "o", "", "write the full report as JSON to this file")
	scoreCmd.Flags().Bool("ai", false, "ask the AI reviewer to explain each score")
}

// report is the document written by --output.
type report struct {
	Evaluations []*evaluation.Evaluation `json:"evaluations"`
	Filters     []filtering.Status       `json:"filters"`
}

func score(cmd *cobra.Command) {
	ctx := context.Background()

	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Info("starting the job-fit scoring", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	p, err := resolveProfile(config)
	if err != nil {
		l.Fatal("loading the preference profile", zap.Error(err))
	}

	extraSkills, _ := cmd.Flags().GetStringSlice("skill")
	resumeSkills, err := resolveResumeSkills(config, extraSkills)
	if err != nil {
		l.Fatal("loading resume skills", zap.Error(err))
	}
	if len(resumeSkills) == 0 {
		l.Warn("no resume skills configured", zap.String("hint", "set resume.skills, resume.skills-file or pass --skill"))
	}

	files, _ := cmd.Flags().GetStringSlice("job-file")
	texts, _ := cmd.Flags().GetStringSlice("job-text")
	docs, err := collectDocuments(files, texts)
	if err != nil {
		l.Fatal("reading job postings", zap.Error(err))
	}
	if len(docs) == 0 {
		l.Fatal("no job postings given", zap.String("hint", "pass --job-file or --job-text"))
	}

	evaluator := evaluation.New(p, resumeSkills, config.Evaluation.Workers, l)
	evals, err := evaluator.Evaluate(ctx, docs)
	if err != nil {
		l.Fatal("evaluating job postings", zap.Error(err))
	}

	filters := prepareFilters(config.Evaluation, l)
	evals, err = filters.RunFilters(ctx, evals)
	if err != nil {
		l.Fatal("filtering failed", zap.Error(err))
	}

	if len(evals) == 0 {
		l.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	evaluation.Sort(evals)

	useAI, _ := cmd.Flags().GetBool("ai")
	if useAI || config.AI.Enabled {
		reviewer, err := newAIReviewer(ctx, config.AI, l)
		if err != nil {
			l.Warn("skipping AI review", zap.Error(err))
		} else {
			evaluation.AttachReviews(ctx, reviewer, evals, l)
		}
	}

	for i, e := range evals {
		logResult(l, i+1, e)
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := writeReport(output, report{Evaluations: evals, Filters: filtering.Describe(filters.Steps())}); err != nil {
			l.Fatal("writing the report", zap.Error(err))
		}
		l.Info("report written", zap.String("path", output))
	}
}

func logResult(l *zap.Logger, rank int, e *evaluation.Evaluation) {
	fields := []zap.Field{
		zap.Int("rank", rank),
		zap.String(logger.FieldSource, e.Source),
		zap.String(logger.FieldTitle, e.Posting.Title),
		zap.Int(logger.FieldFitScore, e.Fit.Score),
		zap.String("fit_band", string(e.Fit.Band)),
		zap.Int(logger.FieldSkillsScore, e.Skills.Score),
		zap.String("skills_band", string(e.Skills.Band)),
		zap.Strings("matched_skills", e.Skills.Matched),
		zap.Strings("missing_skills", e.Skills.Missing),
	}
	if len(e.Fit.Warnings) > 0 {
		fields = append(fields, zap.Strings("warnings", e.Fit.Warnings))
	}
	if e.Review != nil {
		fields = append(fields, zap.String("ai_summary", e.Review.Summary))
	}
	l.Info("posting result", fields...)
}

func resolveProfile(config *Config) (*profile.Profile, error) {
	switch {
	case config.ProfileFile != "":
		return profile.Load(config.ProfileFile)
	case len(config.Profile) > 0:
		return profile.Decode(config.Profile)
	default:
		return profile.Neutral(), nil
	}
}

func resolveResumeSkills(config *Config, extra []string) ([]string, error) {
	inline := append(append([]string(nil), config.Resume.Skills...), extra...)
	return input.LoadList(input.Source{Name: "resume skills", File: config.Resume.SkillsFile}, inline)
}

func collectDocuments(files, texts []string) ([]evaluation.Document, error) {
	docs := make([]evaluation.Document, 0, len(files)+len(texts))
	for _, f := range files {
		text, err := input.Load(input.Source{Name: "job posting", File: f})
		if err != nil {
			return nil, err
		}
		docs = append(docs, evaluation.Document{Source: filepath.Base(f), Text: text})
	}
	for i, t := range texts {
		docs = append(docs, evaluation.Document{Source: fmt.Sprintf("inline-%d", i+1), Text: t})
	}
	return docs, nil
}

func prepareFilters(config *EvaluationConfig, l *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{
		filtering.NewMinimumFit(config.MinimumFitScore, l),
		filtering.NewMinimumSkills(config.MinimumSkillsScore, l),
		filtering.NewLowConfidence(config.DropLowConfidence, l),
	}

	if config.MinimumFitScore == 0 {
		filtering.DisableByName(steps, filtering.MinimumFitName, "no minimum configured")
	}
	if config.MinimumSkillsScore == 0 {
		filtering.DisableByName(steps, filtering.MinimumSkillsName, "no minimum configured")
	}

	return filtering.New(steps, l)
}

func newAIReviewer(ctx context.Context, config *AIConfig, l *zap.Logger) (ai.Reviewer, error) {
	if config.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when the AI review is enabled")
	}

	apiKey, err := input.Load(input.Source{
		Name:  "gemini api key",
		Value: os.Getenv("GEMINI_API_KEY"),
		File:  config.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model, config.Gemini.MaxRetries, l)
	if err != nil {
		return nil, err
	}

	return gemini.NewReviewer(generator, config.Gemini.MaxLogLength, l), nil
}

func writeReport(path string, r report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
