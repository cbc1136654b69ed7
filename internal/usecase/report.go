package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"senti/internal/domain"
	"senti/internal/port"
)

// maxDrivers bounds the aggregated driver list in summaries.
const maxDrivers = 10

// ReportUseCase aggregates stored analyses into the payloads the
// dashboard renders as its table, bar chart and pie chart, and exports
// history as CSV.
type ReportUseCase struct {
	store port.ResultStore
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(store port.ResultStore) *ReportUseCase {
	return &ReportUseCase{store: store}
}

// List returns stored analyses newest first. limit <= 0 returns all.
func (u *ReportUseCase) List(limit int) ([]domain.Analysis, error) {
	return u.store.ListAnalyses(limit)
}

// Get returns one stored analysis by ID.
func (u *ReportUseCase) Get(id string) (domain.Analysis, error) {
	return u.store.GetAnalysis(id)
}

// Summarize aggregates all stored analyses.
func (u *ReportUseCase) Summarize() (domain.Summary, error) {
	analyses, err := u.store.ListAnalyses(0)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to list analyses: %w", err)
	}
	return SummarizeAnalyses(analyses), nil
}

// ExportCSV writes all stored analyses as CSV, oldest first, in the
// dashboard's download format.
func (u *ReportUseCase) ExportCSV(w io.Writer) error {
	analyses, err := u.store.ListAnalyses(0)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	// ListAnalyses is newest first; exports read better chronologically.
	for i, j := 0, len(analyses)-1; i < j; i, j = i+1, j-1 {
		analyses[i], analyses[j] = analyses[j], analyses[i]
	}
	return WriteCSV(w, analyses)
}

// WriteCSV writes analyses in the dashboard's download format.
func WriteCSV(w io.Writer, analyses []domain.Analysis) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"text", "sentiment", "confidence", "keywords"}); err != nil {
		return err
	}
	for _, a := range analyses {
		keywords := make([]string, 0, len(a.Keywords))
		for _, kw := range a.Keywords {
			keywords = append(keywords, kw.Keyword)
		}
		record := []string{
			a.Text,
			string(a.Sentiment),
			strconv.FormatFloat(a.Confidence, 'f', 2, 64),
			strings.Join(keywords, " "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SummarizeAnalyses aggregates sentiment counts, shares, mean confidence
// and the most frequent drivers across the given analyses.
func SummarizeAnalyses(analyses []domain.Analysis) domain.Summary {
	summary := domain.Summary{
		Total:  len(analyses),
		Counts: make(map[domain.Sentiment]int),
		Shares: make(map[domain.Sentiment]float64),
	}
	for _, s := range domain.Sentiments() {
		summary.Counts[s] = 0
	}

	driverCounts := make(map[string]int)
	var confidenceSum float64

	for _, a := range analyses {
		summary.Counts[a.Sentiment]++
		confidenceSum += a.Confidence
		for _, kw := range a.Keywords {
			driverCounts[kw.Keyword] += kw.Count
		}
	}

	if summary.Total > 0 {
		summary.MeanConfidence = confidenceSum / float64(summary.Total)
		for s, c := range summary.Counts {
			summary.Shares[s] = float64(c) / float64(summary.Total)
		}
	}

	summary.TopDrivers = topDrivers(driverCounts, maxDrivers)
	return summary
}

// summarizeRows aggregates the successful rows of a batch run.
func summarizeRows(rows []domain.BatchRow) domain.Summary {
	analyses := make([]domain.Analysis, 0, len(rows))
	for _, row := range rows {
		if row.Result != nil {
			analyses = append(analyses, *row.Result)
		}
	}
	return SummarizeAnalyses(analyses)
}

// topDrivers orders aggregated keyword counts descending, ties broken
// alphabetically so the output is deterministic.
func topDrivers(counts map[string]int, topN int) []domain.KeywordCount {
	if len(counts) == 0 {
		return nil
	}

	drivers := make([]domain.KeywordCount, 0, len(counts))
	for keyword, count := range counts {
		drivers = append(drivers, domain.KeywordCount{Keyword: keyword, Count: count})
	}
	sort.Slice(drivers, func(i, j int) bool {
		if drivers[i].Count != drivers[j].Count {
			return drivers[i].Count > drivers[j].Count
		}
		return drivers[i].Keyword < drivers[j].Keyword
	})

	if len(drivers) > topN {
		drivers = drivers[:topN]
	}
	return drivers
}
