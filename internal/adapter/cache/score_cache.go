package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"senti/internal/domain"
	"senti/internal/port"
)

// ScoreCache memoizes classifier verdicts by text. Classification is a
// remote model call; resubmitting the same text (page reloads, repeated
// lines in uploads) should not pay for it twice.
type ScoreCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
}

type cacheEntry struct {
	score     domain.Score
	timestamp time.Time
}

func NewScoreCache(maxSize int, ttl time.Duration) *ScoreCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ScoreCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:16])
}

func (c *ScoreCache) Get(text string) (domain.Score, bool) {
	key := cacheKey(text)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return domain.Score{}, false
	}

	if time.Since(entry.timestamp) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return domain.Score{}, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return entry.score, true
}

func (c *ScoreCache) Put(text string, score domain.Score) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text)

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{score: score, timestamp: time.Now()}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{score: score, timestamp: time.Now()}
	c.order = append(c.order, key)
}

func (c *ScoreCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
}

func (c *ScoreCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ScoreCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *ScoreCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *ScoreCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// CachedClassifier wraps a Classifier with a ScoreCache.
type CachedClassifier struct {
	classifier port.Classifier
	cache      *ScoreCache
}

func NewCachedClassifier(classifier port.Classifier, cache *ScoreCache) *CachedClassifier {
	return &CachedClassifier{
		classifier: classifier,
		cache:      cache,
	}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) (domain.Score, error) {
	if score, hit := c.cache.Get(text); hit {
		return score, nil
	}

	score, err := c.classifier.Classify(ctx, text)
	if err != nil {
		return domain.Score{}, err
	}

	c.cache.Put(text, score)
	return score, nil
}

func (c *CachedClassifier) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Score, error) {
	scores := make([]domain.Score, len(texts))
	missing := make([]int, 0, len(texts))

	for i, text := range texts {
		if score, hit := c.cache.Get(text); hit {
			scores[i] = score
		} else {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return scores, nil
	}

	uncached := make([]string, len(missing))
	for j, i := range missing {
		uncached[j] = texts[i]
	}

	fresh, err := c.classifier.ClassifyBatch(ctx, uncached)
	if err != nil {
		return nil, err
	}
	for j, i := range missing {
		scores[i] = fresh[j]
		c.cache.Put(texts[i], fresh[j])
	}

	return scores, nil
}
