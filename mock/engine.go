package mock

import (
	"context"

	"github.com/use-agent/amzprice/engine"
)

var _ engine.Engine = (*Engine)(nil)

// Engine is a mock implementation of engine.Engine.
type Engine struct {
	NameFn  func() string
	FetchFn func(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error)
}

func (e *Engine) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}

func (e *Engine) Fetch(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	return e.FetchFn(ctx, req)
}

// Page returns an Engine that serves html for every request.
func Page(html string) *Engine {
	return &Engine{
		FetchFn: func(_ context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
			return &engine.FetchResult{HTML: html, StatusCode: 200, FinalURL: req.URL, Bytes: len(html)}, nil
		},
	}
}
