package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"senti/internal/domain"
	"senti/internal/port"
)

// AnalyzeUseCase classifies one submission and extracts its keyword
// drivers.
type AnalyzeUseCase struct {
	classifier  port.Classifier
	extractor   port.KeywordExtractor
	store       port.ResultStore
	topKeywords int
}

// NewAnalyzeUseCase creates a new analyze use case. topKeywords bounds
// the driver list attached to each analysis.
func NewAnalyzeUseCase(
	classifier port.Classifier,
	extractor port.KeywordExtractor,
	store port.ResultStore,
	topKeywords int,
) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		classifier:  classifier,
		extractor:   extractor,
		store:       store,
		topKeywords: topKeywords,
	}
}

// Analyze classifies text, extracts drivers and persists the result.
// Blank text is rejected with domain.ErrBlankText before any model call.
func (u *AnalyzeUseCase) Analyze(ctx context.Context, text string) (domain.Analysis, error) {
	return u.AnalyzeWithKeywords(ctx, text, u.topKeywords)
}

// AnalyzeWithKeywords is Analyze with a per-call driver count override.
// topN < 0 is rejected; topN = 0 omits drivers entirely.
func (u *AnalyzeUseCase) AnalyzeWithKeywords(ctx context.Context, text string, topN int) (domain.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Analysis{}, domain.ErrBlankText
	}
	if topN < 0 {
		return domain.Analysis{}, fmt.Errorf("keyword count must not be negative: %d", topN)
	}

	score, err := u.classifier.Classify(ctx, text)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("classification failed: %w", err)
	}

	analysis := domain.Analysis{
		ID:         uuid.NewString(),
		Text:       text,
		Sentiment:  score.Sentiment,
		Confidence: score.Confidence,
		Keywords:   u.extractor.Extract(text, topN),
		CreatedAt:  time.Now(),
	}

	if u.store != nil {
		if err := u.store.PutAnalysis(analysis); err != nil {
			return domain.Analysis{}, fmt.Errorf("failed to store analysis: %w", err)
		}
	}

	return analysis, nil
}
