package usecase

import (
	"context"
	"errors"
	"testing"

	"senti/internal/adapter/analyzer"
	"senti/internal/adapter/memstore"
	"senti/internal/domain"
)

// stubClassifier returns a fixed score, or an error when set.
type stubClassifier struct {
	score domain.Score
	err   error
	calls int
}

func (s *stubClassifier) Classify(context.Context, string) (domain.Score, error) {
	s.calls++
	if s.err != nil {
		return domain.Score{}, s.err
	}
	return s.score, nil
}

func (s *stubClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Score, error) {
	scores := make([]domain.Score, len(texts))
	for i := range texts {
		sc, err := s.Classify(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		scores[i] = sc
	}
	return scores, nil
}

func newTestAnalyze(classifier *stubClassifier, store *memstore.MemoryStore) *AnalyzeUseCase {
	return NewAnalyzeUseCase(classifier, analyzer.NewExtractor(), store, 5)
}

func TestAnalyze_Success(t *testing.T) {
	classifier := &stubClassifier{score: domain.Score{Sentiment: domain.SentimentPositive, Confidence: 0.9}}
	store := memstore.NewMemoryStore()
	uc := newTestAnalyze(classifier, store)

	a, err := uc.Analyze(context.Background(), "the pizza was amazing, truly amazing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.ID == "" {
		t.Error("expected a generated ID")
	}
	if a.Sentiment != domain.SentimentPositive {
		t.Errorf("sentiment = %s, want positive", a.Sentiment)
	}
	if len(a.Keywords) == 0 || a.Keywords[0].Keyword != "amazing" || a.Keywords[0].Count != 2 {
		t.Errorf("expected top driver amazing:2, got %v", a.Keywords)
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	stored, err := store.GetAnalysis(a.ID)
	if err != nil {
		t.Fatalf("analysis was not persisted: %v", err)
	}
	if stored.Text != a.Text {
		t.Errorf("stored text mismatch: %q", stored.Text)
	}
}

func TestAnalyze_BlankText(t *testing.T) {
	classifier := &stubClassifier{score: domain.Score{Sentiment: domain.SentimentNeutral}}
	uc := newTestAnalyze(classifier, memstore.NewMemoryStore())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := uc.Analyze(context.Background(), text)
		if !errors.Is(err, domain.ErrBlankText) {
			t.Errorf("Analyze(%q): expected ErrBlankText, got %v", text, err)
		}
	}
	if classifier.calls != 0 {
		t.Errorf("classifier should not be called for blank text, got %d calls", classifier.calls)
	}
}

func TestAnalyze_NegativeTopN(t *testing.T) {
	uc := newTestAnalyze(&stubClassifier{}, memstore.NewMemoryStore())

	_, err := uc.AnalyzeWithKeywords(context.Background(), "some text", -1)
	if err == nil {
		t.Error("expected error for negative keyword count")
	}
}

func TestAnalyze_ZeroTopNOmitsKeywords(t *testing.T) {
	classifier := &stubClassifier{score: domain.Score{Sentiment: domain.SentimentNeutral, Confidence: 0.5}}
	uc := newTestAnalyze(classifier, memstore.NewMemoryStore())

	a, err := uc.AnalyzeWithKeywords(context.Background(), "plenty of words in here", 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.Keywords != nil {
		t.Errorf("expected no keywords, got %v", a.Keywords)
	}
}

func TestAnalyze_ClassifierError(t *testing.T) {
	classifier := &stubClassifier{err: domain.ErrUnavailable}
	store := memstore.NewMemoryStore()
	uc := newTestAnalyze(classifier, store)

	_, err := uc.Analyze(context.Background(), "some text")
	if !errors.Is(err, domain.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}

	count, _ := store.Count()
	if count != 0 {
		t.Errorf("nothing should be stored on classifier failure, got %d", count)
	}
}

func TestAnalyze_NilStoreSkipsPersistence(t *testing.T) {
	classifier := &stubClassifier{score: domain.Score{Sentiment: domain.SentimentNeutral, Confidence: 0.5}}
	uc := NewAnalyzeUseCase(classifier, analyzer.NewExtractor(), nil, 5)

	if _, err := uc.Analyze(context.Background(), "ephemeral text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
