package engine

import "context"

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "http", "http-chrome-tls").
	Name() string

	// Fetch retrieves the page for the given request and returns it decoded
	// to UTF-8. An upstream status >= 400 is an error.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL string

	// Headers override the default browser-like headers.
	Headers map[string]string
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	HTML       string
	StatusCode int
	FinalURL   string
	Charset    string // charset label the body was decoded from
	Bytes      int    // raw body size before decoding
	EngineName string
}
