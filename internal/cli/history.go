package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"senti/internal/usecase"
)

var (
	historyLimit int
	historyJSON  bool
	historyCSV   string
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously analyzed texts",
	Long: `List stored analyses, newest first, with an aggregate summary.

Examples:
  senti history --limit 20
  senti history --csv results.csv
  senti history --clear`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most n analyses (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().StringVar(&historyCSV, "csv", "", "export all history to a CSV file")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all stored analyses")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := openHistory(cfg, GetRootDir())
	if err != nil {
		return err
	}
	defer st.Close()

	if historyClear {
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	report := usecase.NewReportUseCase(st)

	if historyCSV != "" {
		f, err := os.Create(historyCSV)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", historyCSV, err)
		}
		defer f.Close()
		if err := report.ExportCSV(f); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		fmt.Printf("History written to: %s\n", historyCSV)
		return nil
	}

	analyses, err := report.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		output, _ := json.MarshalIndent(analyses, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(analyses) == 0 {
		fmt.Println("No analyses recorded yet.")
		return nil
	}

	for _, a := range analyses {
		text := a.Text
		if len(text) > 60 {
			text = text[:60] + "..."
		}
		fmt.Printf("%s  %-8s %.2f  %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Sentiment, a.Confidence, text)
	}

	summary, err := report.Summarize()
	if err != nil {
		return err
	}
	fmt.Printf("\n%d total: %d negative, %d neutral, %d positive\n",
		summary.Total,
		summary.Counts["negative"],
		summary.Counts["neutral"],
		summary.Counts["positive"])
	return nil
}
