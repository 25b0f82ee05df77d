package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/shoppingagent/backend/internal/domain"
)

const (
	// NoMatchesMessage is shown when no catalog entry matches the query
	NoMatchesMessage = "No matching products found."

	// APIErrorPrefix starts every rendered catalog failure
	APIErrorPrefix = "API Error: "

	defaultResultLimit = 5
)

// CatalogSearchConfig holds configuration for the catalog search service
type CatalogSearchConfig struct {
	ResultLimit        int
	EnableDebugLogging bool
}

// CatalogSearchService filters the remote catalog by keyword
type CatalogSearchService struct {
	catalog            domain.CatalogClient
	tokenizer          *QueryTokenizer
	resultLimit        int
	enableDebugLogging bool
}

// NewCatalogSearchService creates a new catalog search service with dependencies
func NewCatalogSearchService(catalog domain.CatalogClient, config CatalogSearchConfig) *CatalogSearchService {
	limit := config.ResultLimit
	if limit <= 0 {
		limit = defaultResultLimit
	}

	return &CatalogSearchService{
		catalog:            catalog,
		tokenizer:          NewQueryTokenizer(config.EnableDebugLogging),
		resultLimit:        limit,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Search fetches the whole catalog and returns the products whose title contains a query token.
// Flow: fetch catalog -> tokenize query -> filter in catalog order -> truncate
func (s *CatalogSearchService) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	tokens := s.tokenizer.Tokenize(query)
	matches := MatchProducts(products, tokens, s.resultLimit)

	if s.enableDebugLogging {
		log.Printf("[SEARCH] %q: %d products, tokens=%v, %d matches", query, len(products), tokens, len(matches))
	}

	return &domain.SearchResult{
		Query:   query,
		Tokens:  tokens,
		Matches: matches,
	}, nil
}

// SearchText runs Search and renders the outcome for display. It never fails:
// catalog errors come back as "API Error: ..." text.
func (s *CatalogSearchService) SearchText(ctx context.Context, query string) string {
	result, err := s.Search(ctx, query)
	if err != nil {
		log.Printf("[SEARCH] Catalog search failed for %q: %v", query, err)
		return RenderSearchError(err)
	}
	return RenderSearchResult(result)
}

// MatchProducts keeps, in catalog order, up to limit products that have a title and a price
// and whose lowercased title contains at least one token as a substring.
func MatchProducts(products []domain.Product, tokens []string, limit int) []domain.ProductMatch {
	matches := make([]domain.ProductMatch, 0, limit)
	if len(tokens) == 0 {
		return matches
	}

	for _, product := range products {
		if len(matches) >= limit {
			break
		}
		if product.Title == "" || !product.Price.Present() {
			continue
		}
		if !containsAnyToken(strings.ToLower(product.Title), tokens) {
			continue
		}
		matches = append(matches, domain.ProductMatch{
			Title: product.Title,
			Price: product.Price.String(),
		})
	}

	return matches
}

func containsAnyToken(title string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(title, token) {
			return true
		}
	}
	return false
}

// RenderSearchResult joins the match lines with newlines, or returns NoMatchesMessage
func RenderSearchResult(result *domain.SearchResult) string {
	if result == nil || len(result.Matches) == 0 {
		return NoMatchesMessage
	}

	lines := make([]string, len(result.Matches))
	for i, match := range result.Matches {
		lines[i] = match.Line()
	}
	return strings.Join(lines, "\n")
}

// RenderSearchError formats a catalog failure for the user
func RenderSearchError(err error) string {
	return APIErrorPrefix + err.Error()
}
