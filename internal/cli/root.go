package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"senti/config"
	"senti/internal/adapter/cache"
	"senti/internal/adapter/classifier"
	"senti/internal/adapter/store"
	"senti/internal/port"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "senti",
	Short: "Sentiment analysis for submitted text, with keyword drivers",
	Long: `senti classifies text as negative, neutral or positive and reports the
keyword drivers behind each verdict. Classification is delegated to an
external model API (or a built-in offline lexicon); keyword extraction is
local stop-word filtering and frequency counting.

Example usage:
  senti analyze "the food was great"   # Analyze one text
  senti batch reviews/*.txt            # Analyze files line by line
  senti serve                          # Run the dashboard API server`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./senti.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// newClassifier builds the configured classifier, wrapped in a circuit
// breaker and a score cache. The cache sits outermost so repeated texts
// never touch the breaker.
func newClassifier(cfg *config.Config) (port.Classifier, error) {
	var inner port.Classifier
	var err error

	switch cfg.Classifier.Provider {
	case "lexicon", "":
		inner = classifier.NewLexicon()
	case "openai":
		inner, err = classifier.NewOpenAI(
			cfg.Classifier.APIKeyEnv,
			cfg.Classifier.Model,
			cfg.Classifier.BaseURL,
			time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second,
			cfg.Analyze.MaxInputRunes,
		)
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Classifier.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	guarded := classifier.NewBreaker(
		inner,
		cfg.Classifier.BreakerMax,
		time.Duration(cfg.Classifier.BreakerOpenSec)*time.Second,
	)

	scores := cache.NewScoreCache(
		cfg.Classifier.CacheSize,
		time.Duration(cfg.Classifier.CacheTTLSec)*time.Second,
	)
	return cache.NewCachedClassifier(guarded, scores), nil
}

// openHistory opens the bolt-backed result history for rootDir.
func openHistory(cfg *config.Config, dir string) (*store.BoltStore, error) {
	if cfg.Store.Path == "" {
		if err := config.EnsureSentiDir(dir); err != nil {
			return nil, fmt.Errorf("failed to create .senti directory: %w", err)
		}
	}
	st, err := store.NewBoltStore(cfg.HistoryDBPath(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return st, nil
}
