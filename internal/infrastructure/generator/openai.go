package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/shoppingagent/backend/internal/domain"
)

const (
	// Gemini serves an OpenAI-compatible chat completions API under this prefix
	defaultOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultOpenAIModel   = "gemini-2.0-flash"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint
type OpenAI struct {
	client *openai.Client
	cfg    Config
}

// NewOpenAI creates an OpenAI-compatible generator, defaulting to Gemini
func NewOpenAI(cfg Config) (*OpenAI, error) {
	cfg, err := cfg.withDefaults(defaultOpenAIBaseURL, defaultOpenAIModel)
	if err != nil {
		return nil, err
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}, nil
}

// Generate asks the model for a conversational answer to question
func (g *OpenAI) Generate(ctx context.Context, question string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if g.cfg.Instructions != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: g.cfg.Instructions,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	debugLog(g.cfg.Debug, "openai-compatible request: model=%s", g.cfg.Model)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.cfg.Model,
		Messages:  messages,
		MaxTokens: g.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneratorFailure, err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyAnswer
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", domain.ErrEmptyAnswer
	}

	debugLog(g.cfg.Debug, "openai-compatible answer: %d chars", len(answer))
	return answer, nil
}
