package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-fit/internal/logger"
	"github.com/spigell/job-fit/internal/recommend"
	"github.com/spigell/job-fit/internal/session"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recompute recommendations from a saved interview session",
	Run: func(cmd *cobra.Command, _ []string) {
		recommendFromSession(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().String("session", "", "saved interview session file")
	recommendCmd.Flags().Bool("save", false, "write the recomputed recommendations back to the session file")
	recommendCmd.MarkFlagRequired("session")
}

func recommendFromSession(cmd *cobra.Command) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	path, _ := cmd.Flags().GetString("session")

	record, err := session.Load(path)
	if err != nil {
		l.Fatal("loading the session", zap.Error(err))
	}
	l = logger.WithFields(l, zap.String(logger.FieldSession, record.ID))

	s, err := record.Session()
	if err != nil {
		l.Fatal("restoring the interview", zap.Error(err))
	}

	recs, err := recommend.New(nil).Run(s)
	if err != nil {
		l.Fatal("building recommendations", zap.Error(err), zap.String("state", string(s.State())))
	}

	logRecommendations(l, recs)

	if save, _ := cmd.Flags().GetBool("save"); save {
		updated := session.New(s, recs)
		updated.ID = record.ID
		updated.CreatedAt = record.CreatedAt
		if err := updated.Save(path); err != nil {
			l.Fatal("saving the session", zap.Error(err))
		}
		l.Info("session updated", zap.String("path", path))
	}
}
