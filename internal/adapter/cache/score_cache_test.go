package cache

import (
	"context"
	"testing"
	"time"

	"senti/internal/domain"
)

// countingClassifier records how often the backend is actually hit.
type countingClassifier struct {
	calls int
}

func (c *countingClassifier) Classify(context.Context, string) (domain.Score, error) {
	c.calls++
	return domain.Score{Sentiment: domain.SentimentPositive, Confidence: 0.9}, nil
}

func (c *countingClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Score, error) {
	scores := make([]domain.Score, len(texts))
	for i := range texts {
		s, _ := c.Classify(ctx, texts[i])
		scores[i] = s
	}
	return scores, nil
}

func TestCachedClassifier_MemoizesByText(t *testing.T) {
	inner := &countingClassifier{}
	cached := NewCachedClassifier(inner, NewScoreCache(10, time.Minute))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		score, err := cached.Classify(ctx, "same text")
		if err != nil {
			t.Fatal(err)
		}
		if score.Sentiment != domain.SentimentPositive {
			t.Errorf("unexpected score: %+v", score)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 backend call, got %d", inner.calls)
	}

	if _, err := cached.Classify(ctx, "different text"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 backend calls, got %d", inner.calls)
	}
}

func TestCachedClassifier_BatchFillsOnlyMisses(t *testing.T) {
	inner := &countingClassifier{}
	cached := NewCachedClassifier(inner, NewScoreCache(10, time.Minute))
	ctx := context.Background()

	if _, err := cached.Classify(ctx, "warm"); err != nil {
		t.Fatal(err)
	}
	inner.calls = 0

	scores, err := cached.ClassifyBatch(ctx, []string{"warm", "cold", "warm"})
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if inner.calls != 1 {
		t.Errorf("expected only the miss to hit the backend, got %d calls", inner.calls)
	}
}

func TestScoreCache_TTLExpiry(t *testing.T) {
	c := NewScoreCache(10, 10*time.Millisecond)
	c.Put("text", domain.Score{Sentiment: domain.SentimentNeutral, Confidence: 0.5})

	if _, hit := c.Get("text"); !hit {
		t.Fatal("expected a fresh entry to hit")
	}

	time.Sleep(20 * time.Millisecond)
	if _, hit := c.Get("text"); hit {
		t.Error("expected the entry to expire")
	}
}

func TestScoreCache_LRUEviction(t *testing.T) {
	c := NewScoreCache(2, time.Minute)
	c.Put("a", domain.Score{})
	c.Put("b", domain.Score{})

	// Touch "a" so "b" is the eviction candidate.
	c.Get("a")
	c.Put("c", domain.Score{})

	if c.Size() != 2 {
		t.Errorf("expected size 2, got %d", c.Size())
	}
	if _, hit := c.Get("b"); hit {
		t.Error("expected b to be evicted")
	}
	if _, hit := c.Get("a"); !hit {
		t.Error("expected a to survive")
	}
}

func TestScoreCache_Invalidate(t *testing.T) {
	c := NewScoreCache(10, time.Minute)
	c.Put("text", domain.Score{})
	c.Invalidate()

	if c.Size() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Size())
	}
	if _, hit := c.Get("text"); hit {
		t.Error("expected miss after invalidate")
	}
}
