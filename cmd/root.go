package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app        = "job-fit"
	configName = "jobfit"
	envPrefix  = "JOBFIT"
)

type Config struct {
	Profile     map[string]any    `mapstructure:"profile"`
	ProfileFile string            `mapstructure:"profile-file"`
	Resume      *ResumeConfig     `mapstructure:"resume"`
	Evaluation  *EvaluationConfig `mapstructure:"evaluation"`
	Interview   *InterviewConfig  `mapstructure:"interview"`
	AI          *AIConfig         `mapstructure:"ai"`
}

type ResumeConfig struct {
	Skills     []string `mapstructure:"skills"`
	SkillsFile string   `mapstructure:"skills-file"`
}

type EvaluationConfig struct {
	MinimumFitScore    int  `mapstructure:"minimum-fit-score"`
	MinimumSkillsScore int  `mapstructure:"minimum-skills-score"`
	DropLowConfidence  bool `mapstructure:"drop-low-confidence"`
	Workers            int  `mapstructure:"workers"`
}

type InterviewConfig struct {
	OutputDir string `mapstructure:"output-dir"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-fit scores job postings against your preferences and recommends roles from a career interview",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("evaluation.minimum-fit-score", 0)
	v.SetDefault("evaluation.minimum-skills-score", 0)
	v.SetDefault("evaluation.drop-low-confidence", false)
	v.SetDefault("evaluation.workers", 4)
	v.SetDefault("interview.output-dir", ".")
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.max-retries", 3)
	v.SetDefault("ai.gemini.max-log-length", 200)
}

func initConfig() {
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	// Every command can run without a config file, but not with a broken one.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.Resume == nil {
		config.Resume = &ResumeConfig{}
	}
	if config.Evaluation == nil {
		config.Evaluation = &EvaluationConfig{}
	}
	if config.Interview == nil {
		config.Interview = &InterviewConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	return config, nil
}
