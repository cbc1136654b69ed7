package port

import (
	"context"

	"senti/internal/domain"
)

// Classifier assigns a sentiment class and confidence to a text. The
// actual model runs behind an external API; implementations are thin
// delegates.
type Classifier interface {
	// Classify scores a single text.
	Classify(ctx context.Context, text string) (domain.Score, error)

	// ClassifyBatch scores texts in order. Implementations may issue one
	// request per text or batch them; the result slice always matches the
	// input length.
	ClassifyBatch(ctx context.Context, texts []string) ([]domain.Score, error)
}
