package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shoppingagent/backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 500 * time.Millisecond

	// maxBodySize bounds how much of a catalog response is read (10 MiB)
	maxBodySize = 10 << 20
	// maxErrorBodySize bounds how much of an error body is logged
	maxErrorBodySize = 512
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errResponseTooLarge is returned when a catalog body exceeds the read limit
var errResponseTooLarge = errors.New("response too large")

// ClientConfig holds settings for the catalog client
type ClientConfig struct {
	URL               string
	Timeout           time.Duration
	MaxAttempts       int
	RequestsPerSecond float64
	Burst             int
}

// Client fetches the full product list from the remote catalog endpoint
type Client struct {
	httpClient  *http.Client
	url         string
	maxAttempts int
	backoffBase time.Duration
	maxBodySize int64
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog client
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:         cfg.URL,
		maxAttempts: attempts,
		backoffBase: defaultBackoffBase,
		maxBodySize: maxBodySize,
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

// SetDebug enables or disables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[CATALOG] "+format, args...)
	}
}

// exponentialBackoff returns the wait after the given failed attempt (1-based): base, 2*base, 4*base...
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<(attempt-1))
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ShoppingAgent/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// readLimitedBody reads r fully, failing with errResponseTooLarge past limit bytes
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return body, err
	}
	if int64(len(body)) > limit {
		return body[:limit], fmt.Errorf("%w: exceeds %d bytes", errResponseTooLarge, limit)
	}
	return body, nil
}

// retryable reports whether a status code is worth another attempt
func retryable(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

// FetchProducts retrieves every product from the catalog.
// Transport failures and non-2xx answers wrap domain.ErrCatalogUnavailable;
// a body that is not a JSON array of products wraps domain.ErrCatalogMalformed.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	c.debugLog("FetchProducts from %s", c.url)

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, ctx.Err())
			case <-time.After(exponentialBackoff(c.backoffBase, attempt-1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrCatalogUnavailable, err)
		}

		resp, err := c.doRequest(ctx)
		if err != nil {
			log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		body, readErr := readLimitedBody(resp.Body, c.maxBodySize)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet := body
			if len(snippet) > maxErrorBodySize {
				snippet = snippet[:maxErrorBodySize]
			}
			log.Printf("[CATALOG] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(snippet))
			lastErr = fmt.Errorf("%w: %d %s", domain.ErrCatalogUnavailable, resp.StatusCode, http.StatusText(resp.StatusCode))
			if !retryable(resp.StatusCode) {
				return nil, lastErr
			}
			continue
		}

		if errors.Is(readErr, errResponseTooLarge) {
			log.Printf("[CATALOG] %v", readErr)
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, readErr)
		}
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrCatalogUnavailable, readErr)
			continue
		}

		var products []domain.Product
		if err := json.Unmarshal(body, &products); err != nil {
			log.Printf("[CATALOG] JSON decode error: %v", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
		}
		if products == nil {
			return nil, fmt.Errorf("%w: expected a JSON array of products", domain.ErrCatalogMalformed)
		}

		c.debugLog("Fetched %d products", len(products))
		return products, nil
	}

	log.Printf("[CATALOG] All %d attempts failed", c.maxAttempts)
	return nil, lastErr
}
