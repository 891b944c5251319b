package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/amzprice/config"
	"github.com/use-agent/amzprice/models"
	"github.com/use-agent/amzprice/pricer"
)

func main() {
	cfg := config.Load()
	// stdout carries the MCP protocol; logs go to stderr.
	slog.SetDefault(config.NewLogger(cfg.Log, os.Stderr))

	p, err := pricer.NewFromConfig(cfg, slog.Default())
	if err != nil {
		fmt.Fprintf(os.Stderr, "init error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"amzprice",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	priceTool := mcp.NewTool("get_amazon_price",
		mcp.WithDescription("Fetch an Amazon product page and return its title and current price as JSON: url, title, price, price_amount, currency. Missing fields are null."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Amazon product page URL, e.g. https://www.amazon.com/dp/B0XXXXXXX. The scheme may be omitted."),
		),
	)
	s.AddTool(priceTool, handleGetPrice(p))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleGetPrice(p *pricer.Pricer) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		payload, err := json.Marshal(models.Payload{URL: url})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to build request: %v", err)), nil
		}

		env := p.Handle(ctx, payload)
		if env.StatusCode != http.StatusOK {
			return mcp.NewToolResultError(fmt.Sprintf("lookup failed (HTTP %d): %s", env.StatusCode, env.Body)), nil
		}
		return mcp.NewToolResultText(env.Body), nil
	}
}
