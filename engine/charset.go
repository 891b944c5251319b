package engine

import (
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

const defaultCharset = "utf-8"

var reCharset = regexp.MustCompile(`(?i)charset=([^\s;]+)`)

// charsetFromContentType returns the charset parameter of a Content-Type
// header value, or "utf-8" when there is none.
func charsetFromContentType(contentType string) string {
	m := reCharset.FindStringSubmatch(contentType)
	if m == nil {
		return defaultCharset
	}
	label := strings.Trim(m[1], `"'`)
	if label == "" {
		return defaultCharset
	}
	return label
}

// decodeBody converts body from the named charset to UTF-8. Invalid byte
// sequences become U+FFFD; an unknown label is treated as UTF-8.
func decodeBody(body []byte, label string) string {
	enc, _ := charset.Lookup(label)
	if enc == nil {
		enc, _ = charset.Lookup(defaultCharset)
	}
	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		out = body
	}
	return strings.ToValidUTF8(string(out), "�")
}
