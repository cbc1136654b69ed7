package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"senti/internal/domain"
)

// OpenAI classifies text through a chat-completion call against any
// OpenAI-compatible endpoint. The model does all the work; this adapter
// only shapes the request and maps the returned label.
type OpenAI struct {
	client        *openai.Client
	model         string
	maxInputRunes int
}

const systemPrompt = `You are a sentiment classifier. Given a text, respond with a single JSON object of the form {"label": "<negative|neutral|positive>", "confidence": <0.0-1.0>} and nothing else.`

// NewOpenAI creates an OpenAI classifier. The API key is read from the
// environment variable named by apiKeyEnv.
func NewOpenAI(apiKeyEnv, model, baseURL string, timeout time.Duration, maxInputRunes int) (*OpenAI, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAI{
		client:        openai.NewClientWithConfig(cfg),
		model:         model,
		maxInputRunes: maxInputRunes,
	}, nil
}

type verdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classify sends one chat-completion request and parses the JSON verdict.
func (o *OpenAI) Classify(ctx context.Context, text string) (domain.Score, error) {
	text = truncateRunes(text, o.maxInputRunes)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		MaxTokens:   64,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return domain.Score{}, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return domain.Score{}, fmt.Errorf("empty completion response")
	}

	return parseVerdict(resp.Choices[0].Message.Content)
}

// ClassifyBatch issues one request per text, in order.
func (o *OpenAI) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Score, error) {
	scores := make([]domain.Score, len(texts))
	for i, text := range texts {
		score, err := o.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}
	return scores, nil
}

// parseVerdict extracts the JSON object from the completion content and
// maps its label to a sentiment.
func parseVerdict(content string) (domain.Score, error) {
	// Models occasionally wrap the object in prose or code fences.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return domain.Score{}, fmt.Errorf("no JSON object in completion: %q", content)
	}

	var v verdict
	if err := json.Unmarshal([]byte(content[start:end+1]), &v); err != nil {
		return domain.Score{}, fmt.Errorf("failed to parse verdict: %w", err)
	}

	sentiment, err := mapLabel(v.Label)
	if err != nil {
		return domain.Score{}, err
	}

	confidence := v.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return domain.Score{Sentiment: sentiment, Confidence: confidence}, nil
}

// mapLabel accepts both plain class names and the raw LABEL_n ids emitted
// by the cardiffnlp sentiment models.
func mapLabel(label string) (domain.Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "negative", "label_0":
		return domain.SentimentNegative, nil
	case "neutral", "label_1":
		return domain.SentimentNeutral, nil
	case "positive", "label_2":
		return domain.SentimentPositive, nil
	}
	return "", fmt.Errorf("unrecognized sentiment label: %q", label)
}

// truncateRunes caps text at max runes. max <= 0 disables truncation.
func truncateRunes(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
