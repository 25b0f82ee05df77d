package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Product represents one catalog entry. Fields other than title and price are ignored.
type Product struct {
	Title string `json:"title"`
	Price Price  `json:"price"`
}

// Price keeps the catalog's own rendering of a price.
// A missing or null price is absent; zero is a valid price.
type Price struct {
	raw     string
	present bool
}

// NewPrice creates a present price rendered as raw
func NewPrice(raw string) Price {
	return Price{raw: raw, present: true}
}

// Present reports whether the catalog supplied a price
func (p Price) Present() bool {
	return p.present
}

// String returns the price as the catalog sent it
func (p Price) String() string {
	return p.raw
}

// UnmarshalJSON renders integers verbatim, other numbers in their shortest decimal form
// with a fractional part (1200.50 -> 1200.5, 1e3 -> 1000.0), booleans as True/False and
// strings unquoted. Null leaves the price absent.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		*p = NewPrice(s)
		return nil
	}

	switch string(data) {
	case "true":
		*p = NewPrice("True")
		return nil
	case "false":
		*p = NewPrice("False")
		return nil
	}

	*p = NewPrice(formatNumber(string(data)))
	return nil
}

// formatNumber normalizes a non-integer JSON number literal. Integers and
// anything that is not a number are returned unchanged.
func formatNumber(literal string) string {
	if !strings.ContainsAny(literal, ".eE") {
		return literal
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return literal
	}

	exp := 0
	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, _ = strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	}
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ProductMatch is a catalog entry that matched at least one query token
type ProductMatch struct {
	Title string `json:"title"`
	Price string `json:"price"`
}

// Line renders the match the way it is shown to the user
func (m ProductMatch) Line() string {
	return fmt.Sprintf("- %s  Rs %s", m.Title, m.Price)
}

// SearchResult represents the outcome of one catalog search
type SearchResult struct {
	Query   string         `json:"query"`
	Tokens  []string       `json:"tokens"`
	Matches []ProductMatch `json:"matches"`
}

// Answer pairs the generated answer with the catalog search text for one question
type Answer struct {
	Question    string `json:"question"`
	Products    string `json:"products"`
	AgentAnswer string `json:"answer"`
}
