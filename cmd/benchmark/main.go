package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"senti/internal/adapter/analyzer"
	"senti/internal/adapter/classifier"
)

func main() {
	path := flag.String("file", "", "Path to a text file, one input per line")
	topN := flag.Int("k", 5, "Keywords per line")
	flag.Parse()

	if *path == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -file reviews.txt")
		fmt.Println("\nMeasures:")
		fmt.Println("  1. Lexicon classification throughput (lines/sec)")
		fmt.Println("  2. Keyword extraction throughput (lines/sec)")
		fmt.Println("  3. Sentiment distribution over the file")
		os.Exit(1)
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	if len(lines) == 0 {
		fmt.Fprintln(os.Stderr, "No non-blank lines to analyze")
		os.Exit(1)
	}

	fmt.Println("ANALYSIS BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Input: %s (%d lines)\n\n", *path, len(lines))

	lex := classifier.NewLexicon()
	ctx := context.Background()

	counts := map[string]int{}
	start := time.Now()
	for _, line := range lines {
		score, err := lex.Classify(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Classify error: %v\n", err)
			os.Exit(1)
		}
		counts[string(score.Sentiment)]++
	}
	classifyDur := time.Since(start)

	ext := analyzer.NewExtractor()
	start = time.Now()
	keywords := 0
	for _, line := range lines {
		keywords += len(ext.Extract(line, *topN))
	}
	extractDur := time.Since(start)

	fmt.Printf("Classification: %v total, %.0f lines/sec\n", classifyDur.Round(time.Microsecond), rate(len(lines), classifyDur))
	fmt.Printf("Extraction:     %v total, %.0f lines/sec (%d keywords)\n", extractDur.Round(time.Microsecond), rate(len(lines), extractDur), keywords)
	fmt.Println()

	fmt.Println("Sentiment distribution:")
	for _, label := range []string{"negative", "neutral", "positive"} {
		n := counts[label]
		fmt.Printf("  %-8s %5d  (%.1f%%)\n", label, n, 100*float64(n)/float64(len(lines)))
	}
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
