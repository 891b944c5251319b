// Command amzprice-lambda serves price lookups as an AWS Lambda function.
// The response is an API Gateway proxy response, so the function can sit
// behind API Gateway or a function URL, or be invoked directly.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/use-agent/amzprice/config"
	"github.com/use-agent/amzprice/models"
	"github.com/use-agent/amzprice/pricer"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(config.NewLogger(cfg.Log, os.Stdout))

	p, err := pricer.NewFromConfig(cfg, slog.Default())
	if err != nil {
		slog.Error("failed to initialise pricer", "error", err)
		os.Exit(1)
	}

	lambda.Start(newHandler(p))
}

// newHandler adapts the pricer to the Lambda handler signature. The error
// result is always nil: failures are reported inside the envelope.
func newHandler(p *pricer.Pricer) func(context.Context, json.RawMessage) (models.Envelope, error) {
	return func(ctx context.Context, event json.RawMessage) (models.Envelope, error) {
		return p.Handle(ctx, event), nil
	}
}
