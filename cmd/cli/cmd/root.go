package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angelospk/mediasort/pkg/core/assist"
	"github.com/angelospk/mediasort/pkg/core/classify"
)

// Configuration keys.
const (
	CfgKeyOpenAIAPIKey  = "openai.apikey"
	CfgKeyOpenAIModel   = "openai.model"
	CfgKeyLibraryRoot   = "library.root"
	CfgKeyFranchises    = "library.franchises"
	CfgKeyDefaultSeason = "tv.default_season"
	CfgKeyAssistTimeout = "assist.timeout_seconds"
)

var (
	cfgFile  string
	logLevel string

	// RootCmd is the base command. Exported for use in tests.
	RootCmd = &cobra.Command{
		Use:   "mediasort",
		Short: "Classify media and book files and compute their canonical library placement.",
		Long: `mediasort parses messy media, book, and software file names, decides what
kind of content they are, and produces clean canonical names and
library-relative destinations. It can print classifications, plan a
whole directory, or watch a drop folder and sort files as they arrive.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging()
		},
	}
)

// Execute runs the root command. Called once from main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mediasort/config.yaml or ./config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// initConfig reads the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".mediasort"))
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MEDIASORT")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is fine; flags and env cover everything.
		} else {
			fmt.Fprintf(os.Stderr, "Error reading config file (%s): %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

func configureLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// newEngine builds the classification engine from configuration: the
// deterministic local parser always participates, the OpenAI assistant
// only when an API key is configured.
func newEngine(logger *logrus.Logger) *classify.Engine {
	candidates := []classify.CandidateClassifier{assist.Local{}}
	if apiKey := viper.GetString(CfgKeyOpenAIAPIKey); apiKey != "" {
		candidates = append(candidates, assist.NewClient(apiKey, viper.GetString(CfgKeyOpenAIModel), logger))
	}
	engine := classify.NewEngine(logger, candidates...)
	if seconds := viper.GetInt(CfgKeyAssistTimeout); seconds > 0 {
		engine.SetCandidateTimeout(time.Duration(seconds) * time.Second)
	}
	return engine
}

// baseHints assembles caller hints from configuration and flags.
func baseHints(franchises []string, defaultSeason int) classify.Hints {
	hints := classify.Hints{
		Franchises:    viper.GetStringSlice(CfgKeyFranchises),
		DefaultSeason: viper.GetInt(CfgKeyDefaultSeason),
	}
	if len(franchises) > 0 {
		hints.Franchises = append(hints.Franchises, franchises...)
	}
	if defaultSeason > 0 {
		hints.DefaultSeason = defaultSeason
	}
	return hints
}

// configDir returns the directory used for persisted state.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mediasort"), nil
}
