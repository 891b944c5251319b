package extractor

import "regexp"

// Title and price patterns, in priority order. Each has exactly one capture
// group holding the raw text between the tag's '>' and the next '<'.
var (
	TitlePatterns = compileAll(
		`id="productTitle"[^>]*>(.*?)<`,
		`class="product-title-word-break"[^>]*>(.*?)<`,
	)

	PricePatterns = compileAll(
		`id="priceblock_ourprice"[^>]*>(.*?)<`,
		`id="priceblock_dealprice"[^>]*>(.*?)<`,
		`id="priceblock_saleprice"[^>]*>(.*?)<`,
		`class="a-price-whole"[^>]*>(.*?)<`,
		`class="a-offscreen"[^>]*>(.*?)<`,
	)
)

// compileAll compiles case-insensitive, dot-matches-newline patterns.
func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?is)` + e)
	}
	return out
}

// FirstMatch walks patterns in order and returns the cleaned capture of the
// first pattern whose capture is non-empty after cleaning.
func FirstMatch(page string, patterns []*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(page)
		if len(m) < 2 {
			continue
		}
		if text := CleanText(m[1]); text != "" {
			return text, true
		}
	}
	return "", false
}

// Regex extracts fields with the ordered pattern lists.
type Regex struct {
	title []*regexp.Regexp
	price []*regexp.Regexp
}

var _ Extractor = (*Regex)(nil)

// NewRegex returns a Regex extractor using TitlePatterns and PricePatterns.
func NewRegex() *Regex {
	return &Regex{title: TitlePatterns, price: PricePatterns}
}

func (r *Regex) Extract(page string) Fields {
	var f Fields
	f.Title, _ = FirstMatch(page, r.title)
	f.Price, _ = FirstMatch(page, r.price)
	return f
}
