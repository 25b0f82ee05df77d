// Package generator provides the chat-model clients that write the shopping agent's answer.
package generator

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shoppingagent/backend/internal/domain"
)

// ErrMissingAPIKey is returned by constructors when no credential is configured
var ErrMissingAPIKey = errors.New("generator API key is required")

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultMaxTokens = 1024
)

// Config holds settings shared by every provider
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	Instructions string
	MaxTokens    int
	Debug        bool
}

// New builds the generator for the named provider
func New(provider string, cfg Config) (domain.AnswerGenerator, error) {
	var (
		gen domain.AnswerGenerator
		err error
	)

	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderOpenAI, "":
		gen, err = NewOpenAI(cfg)
	case ProviderAnthropic:
		gen, err = NewAnthropic(cfg)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", provider)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func (c Config) withDefaults(baseURL, model string) (Config, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return c, ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	return c, nil
}

func debugLog(enabled bool, format string, args ...interface{}) {
	if enabled {
		log.Printf("[GENERATOR] "+format, args...)
	}
}
