package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/akarpov/realocate/internal/model"
)

// Extractor pulls the place phrase out of free-form chat text when pattern
// matching cannot. It is an optional enrichment: a nil *Extractor is a valid
// "disabled" state and every failure returns an empty phrase, never an error
// that could abort resolution.
type Extractor struct {
	client *openai.Client
	config model.LLMConfig
}

const extractorSystemPrompt = `You extract location references from real-estate chat messages.
Given a message, reply with ONLY the place name, landmark, neighborhood, or area mentioned.
Do not include property details (bedrooms, price, type). If the message contains no location, reply with exactly NONE.`

// NewExtractor creates the phrase extractor, or returns (nil, nil) when no
// provider is configured. Callers must treat a nil extractor as disabled.
func NewExtractor(cfg model.LLMConfig) (*Extractor, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	if cfg.Provider != "openai" {
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm provider %s requires an API key", cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Extractor{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// ExtractPlace returns the place phrase found in text, or "" when the model
// finds none or the call fails.
func (e *Extractor) ExtractPlace(ctx context.Context, text string) string {
	if e == nil {
		return ""
	}

	m := e.config.Model
	if m == "" {
		m = openai.GPT4oMini
	}
	maxTokens := e.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 50
	}
	timeout := time.Duration(e.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: m,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	})
	if err != nil || len(resp.Choices) == 0 {
		return ""
	}

	phrase := strings.TrimSpace(resp.Choices[0].Message.Content)
	phrase = strings.Trim(phrase, `"'`)
	if phrase == "" || strings.EqualFold(phrase, "NONE") {
		return ""
	}
	return phrase
}
