package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// CSS equivalents of TitlePatterns and PricePatterns, same priority order.
var (
	TitleSelectors = compileSelectors(
		"#productTitle",
		".product-title-word-break",
	)

	PriceSelectors = compileSelectors(
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		"#priceblock_saleprice",
		".a-price-whole",
		".a-offscreen",
	)
)

func compileSelectors(exprs ...string) []cascadia.Selector {
	out := make([]cascadia.Selector, len(exprs))
	for i, e := range exprs {
		out[i] = cascadia.MustCompile(e)
	}
	return out
}

// Selector extracts fields by parsing the page into a DOM and querying it.
// Unlike Regex it reads an element's whole text, nested tags included.
type Selector struct {
	title []cascadia.Selector
	price []cascadia.Selector
}

var _ Extractor = (*Selector)(nil)

// NewSelector returns a Selector extractor using TitleSelectors and
// PriceSelectors.
func NewSelector() *Selector {
	return &Selector{title: TitleSelectors, price: PriceSelectors}
}

func (s *Selector) Extract(page string) Fields {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return Fields{}
	}
	var f Fields
	f.Title, _ = firstSelected(doc, s.title)
	f.Price, _ = firstSelected(doc, s.price)
	return f
}

// firstSelected returns the whitespace-collapsed text of the first matching
// element whose text is non-empty, trying selectors in order.
func firstSelected(doc *goquery.Document, selectors []cascadia.Selector) (string, bool) {
	for _, sel := range selectors {
		var found string
		doc.FindMatcher(sel).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			found = strings.Join(strings.Fields(el.Text()), " ")
			return found == ""
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}
