// Package extractor locates the product title and price text inside a raw
// product page.
//
// The orchestration only depends on the Extractor interface, so the matching
// strategy can change (regular expressions today, CSS selectors as an
// alternative) without touching the request pipeline.
package extractor

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Strategy names accepted by New.
const (
	StrategyRegex    = "regex"
	StrategySelector = "selector"
)

// Fields is what an Extractor found. Empty means not found.
type Fields struct {
	Title string
	Price string
}

// Extractor pulls product fields out of page HTML. Implementations must be
// pure functions of their input and safe for concurrent use.
type Extractor interface {
	Extract(page string) Fields
}

// New returns the Extractor for the named strategy.
func New(strategy string) (Extractor, error) {
	switch strategy {
	case "", StrategyRegex:
		return NewRegex(), nil
	case StrategySelector:
		return NewSelector(), nil
	default:
		return nil, fmt.Errorf("extractor: unknown strategy %q", strategy)
	}
}

// CleanText unescapes HTML entities and collapses every whitespace run into
// a single space.
func CleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
