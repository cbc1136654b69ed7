package domain

import (
	"errors"
	"time"
)

// Sentiment is one of the three classes the external model distinguishes.
type Sentiment string

const (
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
)

// Sentiments lists all classes in display order.
func Sentiments() []Sentiment {
	return []Sentiment{SentimentNegative, SentimentNeutral, SentimentPositive}
}

// Valid reports whether s is one of the known classes.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentNegative, SentimentNeutral, SentimentPositive:
		return true
	}
	return false
}

// Score is a classifier verdict for one text.
type Score struct {
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
}

// KeywordCount pairs a surviving token with its occurrence count in one text.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Analysis is the stored result of analyzing one submitted text.
type Analysis struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Sentiment  Sentiment      `json:"sentiment"`
	Confidence float64        `json:"confidence"`
	Keywords   []KeywordCount `json:"keywords,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// BatchRow is one line of a batch run, in input order.
type BatchRow struct {
	Source string    `json:"source"`
	Line   int       `json:"line"`
	Result *Analysis `json:"result,omitempty"`
	Err    string    `json:"error,omitempty"`
}

// Summary aggregates analyses for the dashboard's table and charts.
type Summary struct {
	Total          int                   `json:"total"`
	Counts         map[Sentiment]int     `json:"counts"`
	Shares         map[Sentiment]float64 `json:"shares"`
	MeanConfidence float64               `json:"mean_confidence"`
	TopDrivers     []KeywordCount        `json:"top_drivers,omitempty"`
}

// User is an account known to the external identity backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated session issued by the identity backend.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

var (
	// ErrBlankText is returned when a submission is empty or whitespace only.
	ErrBlankText = errors.New("text is blank")

	// ErrNotFound is returned when a stored analysis does not exist.
	ErrNotFound = errors.New("analysis not found")

	// ErrUnavailable is returned when the classifier backend cannot be
	// reached, including while the circuit breaker is open.
	ErrUnavailable = errors.New("classifier unavailable")
)
