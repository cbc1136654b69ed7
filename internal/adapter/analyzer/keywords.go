package analyzer

import (
	"sort"
	"strings"

	"senti/internal/domain"
)

// Extractor reports the most frequent content words of a text. It holds
// only the read-only stopword set, so a single instance is safe for
// concurrent use.
type Extractor struct {
	stopwords map[string]struct{}
}

// NewExtractor creates a new Extractor with the default English stopwords.
func NewExtractor() *Extractor {
	return &Extractor{stopwords: defaultStopwords()}
}

// Extract returns up to topN keywords ordered by descending count. Ties
// keep the order in which the tokens first appeared in the text, so the
// result is deterministic for a given input.
func (e *Extractor) Extract(text string, topN int) []domain.KeywordCount {
	if topN <= 0 || text == "" {
		return nil
	}

	counts := make(map[string]int)
	var order []string

	for _, word := range splitWords(strings.ToLower(text)) {
		if len(word) <= 2 {
			continue
		}
		if _, isStop := e.stopwords[word]; isStop {
			continue
		}
		if _, seen := counts[word]; !seen {
			order = append(order, word)
		}
		counts[word]++
	}

	if len(order) == 0 {
		return nil
	}

	keywords := make([]domain.KeywordCount, 0, len(order))
	for _, word := range order {
		keywords = append(keywords, domain.KeywordCount{Keyword: word, Count: counts[word]})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

// splitWords segments text into maximal runs of ASCII letters and
// apostrophes. Digits, other punctuation, whitespace and non-ASCII runes
// all act as separators and are discarded.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '\'' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with", "this",
		"have", "had", "but", "not", "you", "your", "we", "our",
		"they", "their", "she", "her", "his", "if", "or", "so",
		"no", "can", "do", "does", "did", "been", "being", "would",
		"could", "should", "may", "might", "must", "shall", "which",
		"who", "whom", "what", "when", "where", "why", "how", "all",
		"each", "every", "both", "few", "more", "most", "other",
		"some", "such", "than", "too", "very", "just", "also",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
