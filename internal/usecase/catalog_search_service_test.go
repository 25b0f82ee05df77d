package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shoppingagent/backend/internal/domain"
	"github.com/shoppingagent/backend/internal/infrastructure/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCatalogClient is a mock implementation of domain.CatalogClient
type MockCatalogClient struct {
	products   []domain.Product
	fetchError error
	calls      int
}

func NewMockCatalogClient(products ...domain.Product) *MockCatalogClient {
	return &MockCatalogClient{products: products}
}

func (m *MockCatalogClient) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	m.calls++
	if m.fetchError != nil {
		return nil, m.fetchError
	}
	return m.products, nil
}

func product(title, price string) domain.Product {
	return domain.Product{Title: title, Price: domain.NewPrice(price)}
}

func newSearchService(client domain.CatalogClient) *CatalogSearchService {
	return NewCatalogSearchService(client, CatalogSearchConfig{})
}

func TestNewCatalogSearchService(t *testing.T) {
	t.Run("defaults result limit to five", func(t *testing.T) {
		s := NewCatalogSearchService(NewMockCatalogClient(), CatalogSearchConfig{})
		assert.Equal(t, 5, s.resultLimit)
	})

	t.Run("keeps a configured limit", func(t *testing.T) {
		s := NewCatalogSearchService(NewMockCatalogClient(), CatalogSearchConfig{ResultLimit: 2})
		assert.Equal(t, 2, s.resultLimit)
	})
}

func TestSearchText_ShoesExample(t *testing.T) {
	client := NewMockCatalogClient(
		product("Red Shoes", "1200"),
		product("Blue Shoes", "1500"),
		product("Shoe Polish", "100"),
	)

	got := newSearchService(client).SearchText(context.Background(), "best shoes under 1500")

	// "shoe polish" contains neither "shoes" nor "1500"
	assert.Equal(t, "- Red Shoes  Rs 1200\n- Blue Shoes  Rs 1500", got)
	assert.Equal(t, 1, client.calls)
}

func TestSearchText_NoTokens(t *testing.T) {
	client := NewMockCatalogClient(product("The Best Lamp", "500"))

	tests := []string{"", "   ", "the best", "a an the of"}
	for _, query := range tests {
		t.Run(fmt.Sprintf("%q", query), func(t *testing.T) {
			got := newSearchService(client).SearchText(context.Background(), query)
			assert.Equal(t, NoMatchesMessage, got)
		})
	}
}

func TestSearchText_SkipsProductsWithoutTitleOrPrice(t *testing.T) {
	client := NewMockCatalogClient(
		domain.Product{Title: "Lamp Without Price"},
		domain.Product{Title: "", Price: domain.NewPrice("10")},
		product("Lamp Shade", "250"),
	)

	got := newSearchService(client).SearchText(context.Background(), "lamp")

	assert.Equal(t, "- Lamp Shade  Rs 250", got)
}

func TestSearchText_ZeroPriceIsIncluded(t *testing.T) {
	client := NewMockCatalogClient(product("Free Sample Lamp", "0"))

	got := newSearchService(client).SearchText(context.Background(), "lamp")

	assert.Equal(t, "- Free Sample Lamp  Rs 0", got)
}

func TestSearchText_CaseInsensitiveSubstring(t *testing.T) {
	client := NewMockCatalogClient(
		product("Desk Lamp Pro", "1999"),
		product("Floor Lamps (set of 2)", "3500"),
		product("Lamppost", "12000"),
		product("Ceiling Fan", "2500"),
	)

	got := newSearchService(client).SearchText(context.Background(), "LAMP")

	assert.Equal(t, "- Desk Lamp Pro  Rs 1999\n- Floor Lamps (set of 2)  Rs 3500\n- Lamppost  Rs 12000", got)
}

func TestSearchText_TruncatesToFiveInCatalogOrder(t *testing.T) {
	var products []domain.Product
	for i := 1; i <= 8; i++ {
		products = append(products, product(fmt.Sprintf("Chair %d", i), fmt.Sprintf("%d00", i)))
	}
	client := NewMockCatalogClient(products...)

	got := newSearchService(client).SearchText(context.Background(), "chair")

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 5)
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("- Chair %d  Rs %d00", i+1, i+1), line)
	}
}

func TestSearchText_PriceKeepsNaturalRepresentation(t *testing.T) {
	client := NewMockCatalogClient(
		product("Sofa", "24999.5"),
		product("Sofa Cover", "1200.0"),
	)

	got := newSearchService(client).SearchText(context.Background(), "sofa")

	assert.Equal(t, "- Sofa  Rs 24999.5\n- Sofa Cover  Rs 1200.0", got)
}

func TestSearchText_NoMatches(t *testing.T) {
	client := NewMockCatalogClient(product("Desk Lamp", "800"))

	got := newSearchService(client).SearchText(context.Background(), "bicycle")

	assert.Equal(t, NoMatchesMessage, got)
}

func TestSearchText_CatalogFailure(t *testing.T) {
	client := NewMockCatalogClient()
	client.fetchError = fmt.Errorf("%w: 500 Internal Server Error", domain.ErrCatalogUnavailable)

	got := newSearchService(client).SearchText(context.Background(), "lamp")

	assert.Equal(t, "API Error: catalog request failed: 500 Internal Server Error", got)
}

func TestSearch_ReturnsStructuredResult(t *testing.T) {
	client := NewMockCatalogClient(product("Desk Lamp", "800"), product("Chair", "1500"))

	result, err := newSearchService(client).Search(context.Background(), "best lamp")

	require.NoError(t, err)
	assert.Equal(t, "best lamp", result.Query)
	assert.Equal(t, []string{"lamp"}, result.Tokens)
	assert.Equal(t, []domain.ProductMatch{{Title: "Desk Lamp", Price: "800"}}, result.Matches)
}

func TestSearch_PropagatesCatalogError(t *testing.T) {
	client := NewMockCatalogClient()
	client.fetchError = fmt.Errorf("%w: unexpected end of JSON input", domain.ErrCatalogMalformed)

	result, err := newSearchService(client).Search(context.Background(), "lamp")

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrCatalogMalformed))
}

func TestMatchProducts(t *testing.T) {
	products := []domain.Product{
		product("Red Shoes", "1200"),
		product("Running Shoes", "2200"),
		product("Shoe Rack", "900"),
	}

	tests := []struct {
		name   string
		tokens []string
		limit  int
		want   []string
	}{
		{name: "nil tokens match nothing", tokens: nil, limit: 5, want: []string{}},
		{name: "any token matches", tokens: []string{"rack", "red"}, limit: 5, want: []string{"Red Shoes", "Shoe Rack"}},
		{name: "substring of a word", tokens: []string{"shoe"}, limit: 5, want: []string{"Red Shoes", "Running Shoes", "Shoe Rack"}},
		{name: "limit applies", tokens: []string{"shoe"}, limit: 2, want: []string{"Red Shoes", "Running Shoes"}},
		{name: "duplicate tokens add nothing", tokens: []string{"red", "red"}, limit: 5, want: []string{"Red Shoes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchProducts(products, tt.tokens, tt.limit)

			titles := make([]string, 0, len(got))
			for _, m := range got {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestRenderSearchResult(t *testing.T) {
	assert.Equal(t, NoMatchesMessage, RenderSearchResult(nil))
	assert.Equal(t, NoMatchesMessage, RenderSearchResult(&domain.SearchResult{}))
	assert.Equal(t, "- A  Rs 1\n- B  Rs 2", RenderSearchResult(&domain.SearchResult{
		Matches: []domain.ProductMatch{{Title: "A", Price: "1"}, {Title: "B", Price: "2"}},
	}))
}

// TestSearchText_WithCatalogClient runs the search against the real HTTP catalog client.
func TestSearchText_WithCatalogClient(t *testing.T) {
	t.Run("server error becomes API Error text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := catalog.NewClient(catalog.ClientConfig{URL: server.URL, MaxAttempts: 1})

		got := newSearchService(client).SearchText(context.Background(), "lamp")

		assert.True(t, strings.HasPrefix(got, "API Error:"), "got %q", got)
	})

	t.Run("malformed body becomes API Error text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>oops</html>`))
		}))
		defer server.Close()

		client := catalog.NewClient(catalog.ClientConfig{URL: server.URL, MaxAttempts: 1})

		got := newSearchService(client).SearchText(context.Background(), "lamp")

		assert.True(t, strings.HasPrefix(got, "API Error:"), "got %q", got)
	})

	t.Run("decodes and filters the live payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"title":"Desk Lamp Pro","price":1999},
				{"title":"Lamp Bulb","price":null},
				{"price":300},
				{"title":"Free Lamp Sticker","price":0}
			]`))
		}))
		defer server.Close()

		client := catalog.NewClient(catalog.ClientConfig{URL: server.URL, MaxAttempts: 1})

		got := newSearchService(client).SearchText(context.Background(), "LAMP")

		assert.Equal(t, "- Desk Lamp Pro  Rs 1999\n- Free Lamp Sticker  Rs 0", got)
	})
}
