package classifier

import (
	"context"
	"strings"

	"senti/internal/domain"
)

// Lexicon is an offline word-list classifier. It exists so the tool works
// with no API key configured and as a deterministic stand-in for tests;
// a hosted model should be preferred for real use.
type Lexicon struct {
	positive  map[string]struct{}
	negative  map[string]struct{}
	negations map[string]struct{}
}

// NewLexicon creates a Lexicon with the built-in valence word lists.
func NewLexicon() *Lexicon {
	return &Lexicon{
		positive:  toSet(positiveWords),
		negative:  toSet(negativeWords),
		negations: toSet(negationWords),
	}
}

// negationWindow is how many tokens a negation reaches forward.
const negationWindow = 3

// Classify scores text by counting valence words, flipping the polarity
// of any sentiment word within reach of a preceding negation.
func (l *Lexicon) Classify(_ context.Context, text string) (domain.Score, error) {
	tokens := strings.Fields(strings.ToLower(text))

	var pos, neg int
	negateUntil := -1

	for i, tok := range tokens {
		tok = strings.Trim(tok, ".,!?;:\"()[]")
		if _, isNeg := l.negations[tok]; isNeg {
			negateUntil = i + negationWindow
			continue
		}

		negated := i <= negateUntil
		if _, ok := l.positive[tok]; ok {
			if negated {
				neg++
			} else {
				pos++
			}
		} else if _, ok := l.negative[tok]; ok {
			if negated {
				pos++
			} else {
				neg++
			}
		}
	}

	total := pos + neg
	if total == 0 || pos == neg {
		return domain.Score{Sentiment: domain.SentimentNeutral, Confidence: 0.5}, nil
	}

	diff := pos - neg
	if diff < 0 {
		diff = -diff
	}
	confidence := 0.5 + 0.5*float64(diff)/float64(total)
	if confidence > 0.99 {
		confidence = 0.99
	}

	sentiment := domain.SentimentPositive
	if neg > pos {
		sentiment = domain.SentimentNegative
	}
	return domain.Score{Sentiment: sentiment, Confidence: confidence}, nil
}

// ClassifyBatch scores each text independently.
func (l *Lexicon) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Score, error) {
	scores := make([]domain.Score, len(texts))
	for i, text := range texts {
		score, err := l.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome", "fantastic",
	"wonderful", "love", "loved", "lovely", "best", "better", "happy",
	"glad", "pleased", "delighted", "enjoy", "enjoyed", "perfect",
	"brilliant", "superb", "outstanding", "impressive", "friendly",
	"helpful", "fast", "easy", "smooth", "beautiful", "nice", "fun",
	"recommend", "recommended", "satisfied", "thanks", "thank",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "worst", "worse", "hate",
	"hated", "poor", "disappointing", "disappointed", "slow", "broken",
	"useless", "annoying", "angry", "sad", "unhappy", "frustrating",
	"frustrated", "problem", "problems", "issue", "issues", "bug",
	"bugs", "fail", "failed", "failure", "wrong", "ugly", "rude",
	"expensive", "waste", "refund", "complaint", "crash", "crashed",
}

var negationWords = []string{
	"not", "no", "never", "none", "nobody", "nothing", "neither",
	"nor", "cannot", "can't", "won't", "don't", "doesn't", "didn't",
	"isn't", "aren't", "wasn't", "weren't", "hardly", "barely",
	"without",
}
