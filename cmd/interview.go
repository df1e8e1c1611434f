package cmd

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-fit/internal/interview"
	"github.com/spigell/job-fit/internal/logger"
	"github.com/spigell/job-fit/internal/recommend"
	"github.com/spigell/job-fit/internal/session"
)

const (
	PromptSkip = "Skip"
	PromptBack = "Back"
	PromptDone = "Done"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Answer the career interview and get role and company recommendations",
	Run: func(cmd *cobra.Command, _ []string) {
		runInterview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().StringP("output-dir", "o", "", "directory for the saved session (default is interview.output-dir or the current directory)")
	viper.BindPFlag("interview.output-dir", interviewCmd.Flags().Lookup("output-dir"))
}

func runInterview(_ *cobra.Command) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Info("starting the career interview", zap.Int("questions", len(interview.Questions())))

	s := interview.NewSession()
	if err := conduct(s, promptStep, l); err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			l.Info("exiting", zap.String("reason", "interview interrupted"))
			return
		}
		l.Fatal("running the interview", zap.Error(err))
	}

	recs, err := recommend.New(nil).Run(s)
	if err != nil {
		l.Fatal("building recommendations", zap.Error(err))
	}

	record := session.New(s, recs)
	path := filepath.Join(config.Interview.OutputDir, session.FileName(time.Now()))
	if err := record.Save(path); err != nil {
		l.Fatal("saving the session", zap.Error(err))
	}

	logRecommendations(logger.WithFields(l, zap.String(logger.FieldSession, record.ID)), recs)
	l.Info("session saved", zap.String("path", path))
}

type stepKind int

const (
	stepAnswer stepKind = iota
	stepSkip
	stepBack
)

type step struct {
	kind   stepKind
	answer interview.Answer
}

// asker asks one question. number is 1-based.
type asker func(q interview.Question, number, total int, previous interview.Response, status interview.Status) (step, error)

// conduct walks the session from its current question to the end.
// Invalid answers are logged and the question is asked again.
func conduct(s *interview.Session, ask asker, l *zap.Logger) error {
	l = logger.OrNop(l)

	questions := interview.Questions()
	position := make(map[string]int, len(questions))
	for i, q := range questions {
		position[q.ID] = i + 1
	}

	for {
		q, ok := s.Current()
		if !ok {
			return nil
		}

		previous, status := s.Get(q.ID)
		st, err := ask(q, position[q.ID], len(questions), previous, status)
		if err != nil {
			return err
		}

		switch st.kind {
		case stepBack:
			s.Back()
		case stepSkip:
			if err := s.SkipCurrent(); err != nil {
				return err
			}
			l.Debug("question skipped", zap.String("question", q.ID))
		default:
			if err := s.Answer(st.answer); err != nil {
				var invalid *interview.ValidationError
				if errors.As(err, &invalid) {
					l.Warn("invalid answer", zap.Error(err))
					continue
				}
				return err
			}
			l.Debug("question answered", zap.String("question", q.ID))
		}
	}
}

func promptStep(q interview.Question, number, total int, previous interview.Response, status interview.Status) (step, error) {
	label := fmt.Sprintf("[%d/%d] %s", number, total, q.Text)
	if status == interview.Answered {
		label += fmt.Sprintf(" (current: %s)", describeAnswer(q, previous.Answer))
	}
	canGoBack := number > 1

	if q.Kind == interview.KindMulti {
		return promptMulti(q, label, canGoBack)
	}

	values, labels := choiceItems(q)
	value, err := selectItem(label, labels, values, canGoBack, true)
	if err != nil {
		return step{}, err
	}

	switch value {
	case PromptSkip:
		return step{kind: stepSkip}, nil
	case PromptBack:
		return step{kind: stepBack}, nil
	}

	if q.Kind == interview.KindScale {
		n, err := strconv.Atoi(value)
		if err != nil {
			return step{}, err
		}
		return step{answer: interview.Scale{Value: n}}, nil
	}
	return step{answer: interview.SingleChoice{Value: value}}, nil
}

func promptMulti(q interview.Question, label string, canGoBack bool) (step, error) {
	var selected []string
	for len(selected) < interview.MaxSelections {
		var values, labels []string
		for _, c := range q.Choices {
			if !contains(selected, c.Value) {
				values = append(values, c.Value)
				labels = append(labels, c.Label)
			}
		}
		if len(selected) > 0 {
			values = append([]string{PromptDone}, values...)
			labels = append([]string{PromptDone}, labels...)
		}

		current := label
		if len(selected) > 0 {
			current = fmt.Sprintf("%s (selected %d of %d)", label, len(selected), interview.MaxSelections)
		}

		value, err := selectItem(current, labels, values, canGoBack && len(selected) == 0, len(selected) == 0)
		if err != nil {
			return step{}, err
		}

		switch value {
		case PromptSkip:
			return step{kind: stepSkip}, nil
		case PromptBack:
			return step{kind: stepBack}, nil
		case PromptDone:
			return step{answer: interview.MultiChoice{Choices: selected}}, nil
		}
		selected = append(selected, value)
	}
	return step{answer: interview.MultiChoice{Choices: selected}}, nil
}

func choiceItems(q interview.Question) (values, labels []string) {
	if q.Kind == interview.KindScale {
		for n := q.Min; n <= q.Max; n++ {
			values = append(values, strconv.Itoa(n))
			labels = append(labels, strconv.Itoa(n))
		}
		return values, labels
	}
	for _, c := range q.Choices {
		values = append(values, c.Value)
		labels = append(labels, c.Label)
	}
	return values, labels
}

func selectItem(label string, labels, values []string, back, skip bool) (string, error) {
	if skip {
		labels = append(labels, PromptSkip)
		values = append(values, PromptSkip)
	}
	if back {
		labels = append(labels, PromptBack)
		values = append(values, PromptBack)
	}

	prompt := promptui.Select{
		Label: label,
		Items: labels,
		Size:  12,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return values[idx], nil
}

func describeAnswer(q interview.Question, a interview.Answer) string {
	if a == nil {
		return PromptSkip
	}
	var labels []string
	for _, v := range a.Values() {
		labels = append(labels, q.Label(v))
	}
	return fmt.Sprint(labels)
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func logRecommendations(l *zap.Logger, recs *recommend.Recommendations) {
	for i, r := range recs.Roles {
		l.Info("role recommendation", zap.Int("rank", i+1), zap.String("role", r.Name), zap.Int("score", r.Score), zap.Strings("reasons", r.Reasons))
	}
	for i, r := range recs.Companies {
		l.Info("company recommendation", zap.Int("rank", i+1), zap.String("company", r.Name), zap.Int("score", r.Score), zap.Strings("reasons", r.Reasons))
	}
	l.Info("search keywords", zap.Strings("keywords", recs.Keywords))
}
