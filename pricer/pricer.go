// Package pricer turns an invocation payload into a product price envelope.
//
// Pipeline, with an early exit after every step but the last two:
//
//	resolve URL → normalize → allow-list → fetch → block check
//	            → extract title/price → parse price → 200 envelope
//
// Every outcome, including a panic inside the pipeline, ends in a
// well-formed models.Envelope.
package pricer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/use-agent/amzprice/engine"
	"github.com/use-agent/amzprice/extractor"
	"github.com/use-agent/amzprice/models"
	"github.com/use-agent/amzprice/product"
)

// Pricer holds the read-only collaborators of a lookup. It keeps no state
// between calls and is safe for concurrent use.
type Pricer struct {
	engine    engine.Engine
	extractor extractor.Extractor
	logger    *slog.Logger
}

// New creates a Pricer. A nil logger falls back to slog.Default().
func New(eng engine.Engine, ext extractor.Extractor, logger *slog.Logger) *Pricer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pricer{engine: eng, extractor: ext, logger: logger}
}

// Handle resolves the URL from a raw invocation payload and runs Lookup.
// It never returns a malformed envelope. The outcome is logged once, with
// the status of the envelope actually returned.
func (p *Pricer) Handle(ctx context.Context, payload []byte) (env models.Envelope) {
	begin := time.Now()
	var (
		rawURL string
		err    error
	)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("lookup panicked", "url", rawURL, "panic", r)
			err = models.NewPriceError(models.ErrCodeInternal, models.MsgFetchFailed, fmt.Errorf("%v", r))
			env = models.ErrorEnvelope(err)
		}
		p.logOutcome(rawURL, env.StatusCode, begin, err)
	}()

	rawURL, err = models.ResolveURL(payload)
	if err != nil {
		return models.ErrorEnvelope(err)
	}

	prod, err := p.Lookup(ctx, rawURL)
	if err != nil {
		return models.ErrorEnvelope(err)
	}
	return models.SuccessEnvelope(prod)
}

// Lookup runs the pipeline for an already resolved URL. The error, when
// non-nil, is always a *models.PriceError.
func (p *Pricer) Lookup(ctx context.Context, rawURL string) (*models.Product, error) {
	normalized, err := product.NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if !product.IsAllowedHost(normalized) {
		return nil, models.ErrDisallowedHost
	}

	page, err := p.engine.Fetch(ctx, &engine.FetchRequest{URL: normalized})
	if err != nil {
		return nil, models.NewPriceError(models.ErrCodeFetchFailed, models.MsgFetchFailed, err)
	}

	if product.LooksBlocked(page.HTML) {
		return nil, models.ErrBlocked
	}

	return Build(normalized, p.extractor.Extract(page.HTML)), nil
}

// Build assembles the success body from extracted fields.
func Build(url string, f extractor.Fields) *models.Product {
	prod := &models.Product{URL: url}
	if f.Title != "" {
		prod.Title = &f.Title
	}
	if f.Price != "" {
		prod.Price = &f.Price
		parsed := product.ParsePrice(f.Price)
		prod.Currency = parsed.Currency
		prod.PriceAmount = parsed.Amount
	}
	return prod
}

func (p *Pricer) logOutcome(url string, status int, begin time.Time, err error) {
	if status == http.StatusOK {
		p.logger.Info("lookup", "url", url, "status", status, "duration", time.Since(begin))
		return
	}
	attrs := []any{"url", url, "status", status, "duration", time.Since(begin)}
	var pe *models.PriceError
	if errors.As(err, &pe) {
		attrs = append(attrs, "code", pe.Code)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	p.logger.Info("lookup rejected", attrs...)
}
