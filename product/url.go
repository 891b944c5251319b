// Package product holds the page-independent rules of a price lookup: which
// URLs are accepted, when a page is a bot wall, and how price text becomes a
// number.
package product

import (
	"net/url"
	"strings"

	"github.com/use-agent/amzprice/models"
)

// NormalizeURL trims raw, defaults the scheme to https, and drops any
// fragment. It fails with models.ErrInvalidURL when nothing is left or the
// result has no host.
func NormalizeURL(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", models.ErrInvalidURL
	}

	if !hasHTTPScheme(cleaned) {
		cleaned = "https://" + cleaned
	}

	u, err := url.Parse(cleaned)
	if err != nil || u.Host == "" {
		return "", models.ErrInvalidURL
	}

	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

func hasHTTPScheme(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsAllowedHost reports whether the URL points at an Amazon storefront.
//
// A host qualifies when one of its labels is "amazon" followed by exactly one
// label ("amazon.com") or by two labels ending in a country code
// ("amazon.co.uk", "amazon.com.au"). This is a heuristic, not a public suffix
// list lookup: "amazon.fraud.com" is rejected, "amazon.fraud.uk" is not.
func IsAllowedHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	var labels []string
	for _, l := range strings.Split(host, ".") {
		if l != "" {
			labels = append(labels, l)
		}
	}

	for i, l := range labels {
		if l != "amazon" {
			continue
		}
		switch len(labels) - i - 1 {
		case 1:
			return true
		case 2:
			if len(labels[len(labels)-1]) == 2 {
				return true
			}
		}
	}
	return false
}
