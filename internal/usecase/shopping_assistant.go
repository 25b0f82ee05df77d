package usecase

import (
	"context"
	"strings"

	"github.com/shoppingagent/backend/internal/domain"
)

// ShoppingAssistant answers a question with both the generated answer and the catalog matches
type ShoppingAssistant struct {
	generator domain.AnswerGenerator
	search    *CatalogSearchService
}

// NewShoppingAssistant creates a new shopping assistant with dependencies
func NewShoppingAssistant(generator domain.AnswerGenerator, search *CatalogSearchService) *ShoppingAssistant {
	return &ShoppingAssistant{
		generator: generator,
		search:    search,
	}
}

// Ask runs the answer generator and then the catalog search.
// A blank question skips the generator and returns domain.ErrInvalidRequest.
// Any error is returned together with the answer, whose Products text is always set.
func (a *ShoppingAssistant) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return &domain.Answer{
			Question: question,
			Products: a.search.SearchText(ctx, question),
		}, domain.ErrInvalidRequest
	}

	agentAnswer, genErr := a.generator.Generate(ctx, question)

	answer := &domain.Answer{
		Question:    question,
		Products:    a.search.SearchText(ctx, question),
		AgentAnswer: agentAnswer,
	}

	return answer, genErr
}
