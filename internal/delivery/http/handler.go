package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoppingagent/backend/internal/domain"
	"github.com/shoppingagent/backend/internal/usecase"
)

const serviceVersion = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search    *usecase.CatalogSearchService
	assistant *usecase.ShoppingAssistant
}

// NewHandler creates a new HTTP handler.
// A nil dependency makes the matching endpoints answer 501.
func NewHandler(search *usecase.CatalogSearchService, assistant *usecase.ShoppingAssistant) *Handler {
	return &Handler{
		search:    search,
		assistant: assistant,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopping-agent",
		"version": serviceVersion,
	})
}

// AskRequest is the body of POST /api/v1/shopping/ask
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// SearchProducts handles GET /api/v1/products/search?q=...
// Catalog failures are reported in the results text, not as an HTTP error.
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Catalog search not configured",
		})
		return
	}

	query, ok := c.GetQuery("q")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'q' is required",
		})
		return
	}

	result, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		log.Printf("[HTTP] Catalog search failed for %q: %v", query, err)
		c.JSON(http.StatusOK, gin.H{
			"query":   query,
			"tokens":  []string{},
			"count":   0,
			"results": usecase.RenderSearchError(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   result.Query,
		"tokens":  result.Tokens,
		"count":   len(result.Matches),
		"results": usecase.RenderSearchResult(result),
	})
}

// Ask handles POST /api/v1/shopping/ask
func (h *Handler) Ask(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "Shopping assistant not configured",
		})
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			response := gin.H{
				"error": "Question must not be blank",
			}
			if answer != nil {
				response["products"] = answer.Products
			}
			c.JSON(http.StatusBadRequest, response)
			return
		}

		log.Printf("[HTTP] Answer generation failed for %q: %v", req.Question, err)
		response := gin.H{
			"error":   "Answer generator temporarily unavailable",
			"details": err.Error(),
		}
		if answer != nil {
			response["question"] = answer.Question
			response["products"] = answer.Products
		}
		c.JSON(http.StatusBadGateway, response)
		return
	}

	c.JSON(http.StatusOK, answer)
}
