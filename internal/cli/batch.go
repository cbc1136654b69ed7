package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"senti/internal/adapter/analyzer"
	"senti/internal/adapter/fs"
	"senti/internal/domain"
	"senti/internal/usecase"
)

var (
	batchJSON    bool
	batchCSV     string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch <file|dir|glob>...",
	Short: "Analyze text files line by line",
	Long: `Analyze one or more line-delimited text files. Every non-blank line is
treated as one submission. Directories are searched for .txt files using
the configured include/exclude patterns.

Examples:
  senti batch reviews.txt
  senti batch feedback/ --workers 8
  senti batch "surveys/**/*.txt" --csv results.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "output as JSON")
	batchCmd.Flags().StringVar(&batchCSV, "csv", "", "write results to a CSV file")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent classifications (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	cls, err := newClassifier(cfg)
	if err != nil {
		return err
	}

	st, err := openHistory(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	analyzeUC := usecase.NewAnalyzeUseCase(cls, analyzer.NewExtractor(), st, cfg.Analyze.TopKeywords)
	batchUC := usecase.NewBatchUseCase(analyzeUC, fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes), workers)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Analyzing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}
	if batchJSON {
		progress = nil // keep stdout parseable
	}

	result, err := batchUC.Run(cmd.Context(), args, progress)
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	if batchCSV != "" {
		if err := writeBatchCSV(batchCSV, result); err != nil {
			return err
		}
	}

	if batchJSON {
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	printBatchResult(result)
	if batchCSV != "" {
		fmt.Printf("\nResults written to: %s\n", batchCSV)
	}
	return nil
}

func writeBatchCSV(path string, result *usecase.BatchResult) error {
	analyses := make([]domain.Analysis, 0, len(result.Rows))
	for _, row := range result.Rows {
		if row.Result != nil {
			analyses = append(analyses, *row.Result)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := usecase.WriteCSV(f, analyses); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func printBatchResult(result *usecase.BatchResult) {
	var failed int
	for _, row := range result.Rows {
		if row.Result == nil {
			failed++
			fmt.Printf("  %s:%d  ERROR  %s\n", row.Source, row.Line, row.Err)
			continue
		}
		a := row.Result
		text := a.Text
		if len(text) > 60 {
			text = text[:60] + "..."
		}
		fmt.Printf("  %-8s %.2f  %s\n", a.Sentiment, a.Confidence, text)
	}

	fmt.Printf("\nAnalyzed %d line(s)", result.Summary.Total)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println(":")
	for _, s := range domain.Sentiments() {
		fmt.Printf("  %-8s %4d  (%.1f%%)\n", s, result.Summary.Counts[s], result.Summary.Shares[s]*100)
	}
	if len(result.Summary.TopDrivers) > 0 {
		drivers := make([]string, 0, len(result.Summary.TopDrivers))
		for _, kw := range result.Summary.TopDrivers {
			drivers = append(drivers, fmt.Sprintf("%s (%d)", kw.Keyword, kw.Count))
		}
		fmt.Printf("\nTop drivers: %s\n", strings.Join(drivers, ", "))
	}
}
