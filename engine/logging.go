package engine

import (
	"context"
	"log/slog"
	"time"
)

// Ensure LoggingEngine implements Engine at compile time.
var _ Engine = (*LoggingEngine)(nil)

// LoggingEngine wraps an Engine with fetch logging.
type LoggingEngine struct {
	next   Engine
	logger *slog.Logger
}

// NewLoggingEngine creates a new LoggingEngine.
func NewLoggingEngine(next Engine, logger *slog.Logger) *LoggingEngine {
	return &LoggingEngine{next: next, logger: logger}
}

// Name delegates to the wrapped engine.
func (e *LoggingEngine) Name() string {
	return e.next.Name()
}

// Fetch delegates to the wrapped engine and logs the outcome.
func (e *LoggingEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	begin := time.Now()
	result, err := e.next.Fetch(ctx, req)
	if err != nil {
		e.logger.Warn("fetch failed",
			"engine", e.next.Name(),
			"url", req.URL,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	e.logger.Debug("fetch",
		"engine", e.next.Name(),
		"url", req.URL,
		"final_url", result.FinalURL,
		"status", result.StatusCode,
		"bytes", result.Bytes,
		"charset", result.Charset,
		"duration", time.Since(begin),
	)
	return result, nil
}
