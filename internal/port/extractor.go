package port

import "senti/internal/domain"

// KeywordExtractor reports the most frequent content words of a text.
type KeywordExtractor interface {
	// Extract returns up to topN keywords ordered by descending count,
	// ties broken by first appearance in the text.
	Extract(text string, topN int) []domain.KeywordCount
}
