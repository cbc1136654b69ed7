package usecase

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"senti/internal/domain"
)

// FileExpander resolves batch arguments to concrete file paths.
type FileExpander interface {
	Expand(args []string) ([]string, error)
}

// BatchUseCase analyzes line-delimited text files. Every non-blank line
// is one submission, matching the upload semantics of the dashboard.
type BatchUseCase struct {
	analyze  *AnalyzeUseCase
	expander FileExpander
	workers  int
}

// ProgressFunc reports batch progress: lines done out of total.
type ProgressFunc func(done, total int)

// BatchResult holds the per-line rows (in input order) and the run summary.
type BatchResult struct {
	Rows    []domain.BatchRow
	Summary domain.Summary
}

// NewBatchUseCase creates a new batch use case running at most workers
// classifications concurrently.
func NewBatchUseCase(analyze *AnalyzeUseCase, expander FileExpander, workers int) *BatchUseCase {
	if workers <= 0 {
		workers = 4
	}
	return &BatchUseCase{
		analyze:  analyze,
		expander: expander,
		workers:  workers,
	}
}

// Run expands args to files, splits them into submissions and analyzes
// each. Per-line failures are recorded in the row, not returned; only
// setup problems (no files, unreadable file) abort the run.
func (u *BatchUseCase) Run(ctx context.Context, args []string, progress ProgressFunc) (*BatchResult, error) {
	files, err := u.expander.Expand(args)
	if err != nil {
		return nil, fmt.Errorf("failed to expand arguments: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}

	var rows []domain.BatchRow
	var texts []string
	for _, file := range files {
		lines, err := readLines(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for _, l := range lines {
			rows = append(rows, domain.BatchRow{Source: file, Line: l.number})
			texts = append(texts, l.text)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no non-blank lines found in %d file(s)", len(files))
	}

	return u.run(ctx, rows, texts, progress)
}

// RunReader analyzes line-delimited text from r, e.g. an uploaded file.
// source labels the rows in the result.
func (u *BatchUseCase) RunReader(ctx context.Context, source string, r io.Reader, progress ProgressFunc) (*BatchResult, error) {
	lines, err := scanLines(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no non-blank lines in %s", source)
	}

	rows := make([]domain.BatchRow, len(lines))
	texts := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = domain.BatchRow{Source: source, Line: l.number}
		texts[i] = l.text
	}

	return u.run(ctx, rows, texts, progress)
}

func (u *BatchUseCase) run(ctx context.Context, rows []domain.BatchRow, texts []string, progress ProgressFunc) (*BatchResult, error) {
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)

	for i := range rows {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			analysis, err := u.analyze.Analyze(gctx, texts[i])

			mu.Lock()
			if err != nil {
				rows[i].Err = err.Error()
			} else {
				rows[i].Result = &analysis
			}
			done++
			if progress != nil {
				progress(done, len(rows))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BatchResult{
		Rows:    rows,
		Summary: summarizeRows(rows),
	}, nil
}

type numberedLine struct {
	number int
	text   string
}

// readLines returns the non-blank lines of a file with their 1-based
// line numbers.
func readLines(path string) ([]numberedLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanLines(f)
}

func scanLines(r io.Reader) ([]numberedLine, error) {
	var lines []numberedLine
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, numberedLine{number: n, text: text})
	}
	return lines, scanner.Err()
}
