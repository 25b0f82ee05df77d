package domain

import "context"

// CatalogClient defines the interface for fetching the remote product catalog
type CatalogClient interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// AnswerGenerator produces a conversational answer for a shopping question.
// The returned text is opaque to the rest of the system.
type AnswerGenerator interface {
	Generate(ctx context.Context, question string) (string, error)
}
