package usecase

import (
	"log"
	"regexp"
	"strings"
)

// QueryTokenizer turns a free-text shopping question into match tokens
type QueryTokenizer struct {
	enableDebugLogging bool
}

// wordPattern matches maximal runs of word characters (letters, digits, underscore) in any script
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// queryStopWords are dropped before matching: articles, prepositions and comparison words
var queryStopWords = map[string]bool{
	"the":     true,
	"with":    true,
	"under":   true,
	"above":   true,
	"for":     true,
	"of":      true,
	"and":     true,
	"or":      true,
	"a":       true,
	"an":      true,
	"in":      true,
	"to":      true,
	"below":   true,
	"between": true,
	"is":      true,
	"best":    true,
}

// NewQueryTokenizer creates a new query tokenizer
func NewQueryTokenizer(enableDebugLogging bool) *QueryTokenizer {
	return &QueryTokenizer{
		enableDebugLogging: enableDebugLogging,
	}
}

// Tokenize lowercases the query, extracts word runs and removes stop words.
// Order is preserved and duplicates are kept; callers only test membership.
func (t *QueryTokenizer) Tokenize(query string) []string {
	words := wordPattern.FindAllString(strings.ToLower(query), -1)

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if queryStopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}

	if t.enableDebugLogging {
		log.Printf("[TOKENIZE] Input: %q -> Tokens: %v", query, tokens)
	}

	return tokens
}

