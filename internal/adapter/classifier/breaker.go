package classifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"senti/internal/domain"
	"senti/internal/port"
)

// Breaker wraps a Classifier with a circuit breaker so a failing model
// endpoint degrades to fast ErrUnavailable errors instead of a stalled
// request per submission.
type Breaker struct {
	inner port.Classifier
	cb    *gobreaker.CircuitBreaker
}

// NewBreaker wraps inner. The circuit opens after maxFailures consecutive
// failures and stays open for openFor.
func NewBreaker(inner port.Classifier, maxFailures int, openFor time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if openFor <= 0 {
		openFor = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "classifier",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
	})

	return &Breaker{inner: inner, cb: cb}
}

// Classify delegates through the breaker.
func (b *Breaker) Classify(ctx context.Context, text string) (domain.Score, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Classify(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.Score{}, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
		}
		return domain.Score{}, err
	}
	return result.(domain.Score), nil
}

// ClassifyBatch delegates through the breaker as one unit of work.
func (b *Breaker) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Score, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.ClassifyBatch(ctx, texts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
		}
		return nil, err
	}
	return result.([]domain.Score), nil
}
