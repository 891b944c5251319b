package product

import "strings"

// blockMarkers are lowercase substrings that only show up on Amazon's
// automated-traffic interstitials.
var blockMarkers = []string{"captcha", "robot check"}

// LooksBlocked reports whether html is a bot-block page rather than a
// product page.
func LooksBlocked(html string) bool {
	lower := strings.ToLower(html)
	for _, m := range blockMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
