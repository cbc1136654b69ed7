package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"senti/internal/adapter/analyzer"
	"senti/internal/usecase"
)

var (
	analyzeJSON     bool
	analyzeKeywords int
	analyzeNoStore  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze the sentiment of one text",
	Long: `Analyze a single text and print its sentiment, confidence and keyword
drivers. The text is read from the argument, or from stdin when omitted.

Examples:
  senti analyze "the food was great but the service was slow"
  echo "what a disappointment" | senti analyze
  senti analyze --keywords 10 --json "loved it, truly loved it"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")
	analyzeCmd.Flags().IntVarP(&analyzeKeywords, "keywords", "k", 0, "number of keyword drivers (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "do not record the result in history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to analyze")
	}

	cls, err := newClassifier(cfg)
	if err != nil {
		return err
	}

	uc := usecase.NewAnalyzeUseCase(cls, analyzer.NewExtractor(), nil, cfg.Analyze.TopKeywords)
	if !analyzeNoStore {
		st, err := openHistory(cfg, GetRootDir())
		if err != nil {
			return err
		}
		defer st.Close()
		uc = usecase.NewAnalyzeUseCase(cls, analyzer.NewExtractor(), st, cfg.Analyze.TopKeywords)
	}

	topN := cfg.Analyze.TopKeywords
	if analyzeKeywords > 0 {
		topN = analyzeKeywords
	}

	analysis, err := uc.AnalyzeWithKeywords(cmd.Context(), text, topN)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		output, _ := json.MarshalIndent(analysis, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Sentiment:  %s\n", analysis.Sentiment)
	fmt.Printf("Confidence: %.2f\n", analysis.Confidence)
	if len(analysis.Keywords) > 0 {
		drivers := make([]string, 0, len(analysis.Keywords))
		for _, kw := range analysis.Keywords {
			drivers = append(drivers, fmt.Sprintf("%s (%d)", kw.Keyword, kw.Count))
		}
		fmt.Printf("Drivers:    %s\n", strings.Join(drivers, ", "))
	}
	return nil
}
