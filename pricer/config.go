package pricer

import (
	"log/slog"

	"github.com/use-agent/amzprice/config"
	"github.com/use-agent/amzprice/engine"
	"github.com/use-agent/amzprice/extractor"
)

// NewFromConfig wires the HTTP engine (with fetch logging) and the configured
// extraction strategy into a Pricer.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Pricer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ext, err := extractor.New(cfg.Extract.Strategy)
	if err != nil {
		return nil, err
	}

	httpEngine := engine.NewHTTPEngine(
		engine.WithTimeout(cfg.Fetch.Timeout),
		engine.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes),
		engine.WithChromeTLS(cfg.Fetch.ChromeTLS),
		engine.WithProxy(cfg.Fetch.Proxy),
	)

	return New(engine.NewLoggingEngine(httpEngine, logger), ext, logger), nil
}
