package models

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Payload is the invocation event as delivered by API Gateway, a direct
// Lambda invoke or one of the HTTP routes. Fields are left untyped because
// callers may send anything; ResolveURL only trusts values of the right shape.
type Payload struct {
	URL                   any `json:"url,omitempty"`
	QueryStringParameters any `json:"queryStringParameters,omitempty"`
	Body                  any `json:"body,omitempty"`
	IsBase64Encoded       any `json:"isBase64Encoded,omitempty"`
}

// ResolveURL finds the candidate URL in a raw invocation payload.
//
// Lookup order, first hit wins:
//  1. top-level "url" string
//  2. "queryStringParameters"."url" string
//  3. "body" string (base64-decoded when "isBase64Encoded" is truthy)
//     holding a JSON object with a "url" string
//
// A payload that is not a JSON object yields ErrInvalidInput; a payload with
// no URL in any location yields ErrMissingParameter.
func ResolveURL(raw []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return "", ErrInvalidInput
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", ErrInvalidInput
	}
	return p.ResolveURL()
}

// ResolveURL applies the lookup order of the package-level ResolveURL to an
// already decoded payload.
//
// The first string found wins even when it is empty; an empty result is
// reported as missing.
func (p *Payload) ResolveURL() (string, error) {
	s, ok := p.URL.(string)
	if !ok {
		if qs, isMap := p.QueryStringParameters.(map[string]any); isMap {
			s, ok = qs["url"].(string)
		}
	}
	if !ok {
		s, ok = urlFromBody(p.Body, truthy(p.IsBase64Encoded))
	}
	if !ok || s == "" {
		return "", ErrMissingParameter
	}
	return s, nil
}

// urlFromBody decodes the body and looks for a "url" string. Any decode
// failure counts as "not found".
func urlFromBody(body any, isBase64 bool) (string, bool) {
	text, ok := body.(string)
	if !ok || text == "" {
		return "", false
	}

	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return "", false
		}
		text = strings.ToValidUTF8(string(decoded), "�")
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return "", false
	}
	s, ok := obj["url"].(string)
	return s, ok
}

// truthy reports whether a JSON value counts as set: true, a non-zero number
// or a non-empty string.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return false
	}
}
