package product

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reCurrency = regexp.MustCompile(`[$€£¥₹]`)
	reNumber   = regexp.MustCompile(`\d[\d,.]*`)
)

// Price is the parsed form of a price string. Either field may be nil.
type Price struct {
	Currency *string
	Amount   *float64
}

// ParsePrice pulls the currency symbol and numeric amount out of text such
// as "$1,234.56" or "1.234,56 €". Nothing in here fails: anything that
// cannot be read is left nil.
func ParsePrice(text string) Price {
	var p Price
	if text == "" {
		return p
	}

	if sym := reCurrency.FindString(text); sym != "" {
		p.Currency = &sym
	}

	run := reNumber.FindString(text)
	if run == "" {
		return p
	}

	d, err := decimal.NewFromString(normalizeNumber(run))
	if err != nil {
		return p
	}
	amount, _ := d.Float64()
	// Digit runs past float64 range have no JSON form.
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return p
	}
	p.Amount = &amount
	return p
}

// normalizeNumber rewrites a digit run into plain "1234.56" form.
//
// With both separators present, whichever comes last is the decimal point
// and the other one groups thousands. A lone comma is a decimal comma.
func normalizeNumber(run string) string {
	lastComma := strings.LastIndex(run, ",")
	lastDot := strings.LastIndex(run, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			return strings.ReplaceAll(strings.ReplaceAll(run, ".", ""), ",", ".")
		}
		return strings.ReplaceAll(run, ",", "")
	case lastComma >= 0:
		return strings.ReplaceAll(run, ",", ".")
	default:
		return run
	}
}
