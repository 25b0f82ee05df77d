package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/shoppingagent/backend/internal/domain"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com/"
	defaultAnthropicModel   = "claude-sonnet-4-5"
)

// Anthropic answers questions through the Anthropic Messages API
type Anthropic struct {
	client anthropic.Client
	cfg    Config
}

// NewAnthropic creates an Anthropic-backed generator
func NewAnthropic(cfg Config) (*Anthropic, error) {
	cfg, err := cfg.withDefaults(defaultAnthropicBaseURL, defaultAnthropicModel)
	if err != nil {
		return nil, err
	}

	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
	)

	return &Anthropic{client: client, cfg: cfg}, nil
}

// Generate asks the model for a conversational answer to question
func (g *Anthropic) Generate(ctx context.Context, question string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.cfg.Model),
		MaxTokens: int64(g.cfg.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	}
	if g.cfg.Instructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: g.cfg.Instructions}}
	}

	debugLog(g.cfg.Debug, "anthropic request: model=%s", g.cfg.Model)

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneratorFailure, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", domain.ErrEmptyAnswer
	}

	debugLog(g.cfg.Debug, "anthropic answer: %d chars", len(answer))
	return answer, nil
}
