package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shoppingagent/backend/config"
	httpDelivery "github.com/shoppingagent/backend/internal/delivery/http"
	"github.com/shoppingagent/backend/internal/infrastructure/catalog"
	"github.com/shoppingagent/backend/internal/infrastructure/generator"
	"github.com/shoppingagent/backend/internal/infrastructure/ratelimit"
	"github.com/shoppingagent/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debug := cfg.Server.Environment == "development"

	log.Printf("Starting Shopping Agent v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	catalogClient := catalog.NewClient(catalog.ClientConfig{
		URL:               cfg.Catalog.URL,
		Timeout:           cfg.Catalog.Timeout,
		MaxAttempts:       cfg.Catalog.MaxAttempts,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
	})

	// Enable debug mode in development environment
	if debug {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}
	log.Printf("Catalog: %s (timeout %s, %d attempts)", cfg.Catalog.URL, cfg.Catalog.Timeout, cfg.Catalog.MaxAttempts)

	answerGenerator, err := generator.New(cfg.Generator.Provider, generator.Config{
		APIKey:       cfg.Generator.APIKey,
		BaseURL:      cfg.Generator.BaseURL,
		Model:        cfg.Generator.Model,
		Instructions: cfg.Generator.Instructions,
		Debug:        debug,
	})
	if err != nil {
		log.Fatalf("Failed to create answer generator: %v", err)
	}
	log.Printf("Answer generator: %s (key: %s...)", cfg.Generator.Provider, maskKey(cfg.Generator.APIKey))

	// Initialize usecase layer
	searchService := usecase.NewCatalogSearchService(catalogClient, usecase.CatalogSearchConfig{
		ResultLimit:        cfg.Catalog.ResultLimit,
		EnableDebugLogging: debug,
	})
	assistant := usecase.NewShoppingAssistant(answerGenerator, searchService)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, assistant)

	var limiter httpDelivery.VisitorLimiter
	if cfg.RateLimit.PerIP > 0 {
		visitors := ratelimit.NewVisitorLimiter(cfg.RateLimit.PerIP)
		defer visitors.Close()
		limiter = visitors
		log.Printf("Rate limit: %d requests/minute per IP", cfg.RateLimit.PerIP)
	}

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, limiter)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:8]
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
