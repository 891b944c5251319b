// amzprice-cli looks up a single Amazon product from the command line.
//
// Usage:
//
//	amzprice-cli check https://www.amazon.com/dp/B0XXXXXXX
//	amzprice-cli --strategy selector --timeout 5s check amazon.co.uk/dp/B0XXXXXXX
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"
	"github.com/use-agent/amzprice/config"
	"github.com/use-agent/amzprice/models"
	"github.com/use-agent/amzprice/pricer"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	defaults := config.Load()

	return &cli.App{
		Name:      "amzprice-cli",
		Usage:     "Fetch an Amazon product page and print its title and price as JSON",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   defaults.Fetch.Timeout,
				Usage:   "Fetch timeout",
				EnvVars: []string{"AMZPRICE_FETCH_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "strategy",
				Value:   defaults.Extract.Strategy,
				Usage:   "Extraction strategy (regex, selector)",
				EnvVars: []string{"AMZPRICE_EXTRACT_STRATEGY"},
			},
			&cli.BoolFlag{
				Name:    "chrome-tls",
				Value:   defaults.Fetch.ChromeTLS,
				Usage:   "Use a Chrome TLS fingerprint",
				EnvVars: []string{"AMZPRICE_CHROME_TLS"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"AMZPRICE_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			checkCommand(defaults),
		},
	}
}

func checkCommand(defaults *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Look up one product URL",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "envelope",
				Usage: "Print the full response envelope instead of the body",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("check needs exactly one URL argument", 2)
			}

			cfg := *defaults
			cfg.Fetch.Timeout = c.Duration("timeout")
			cfg.Fetch.ChromeTLS = c.Bool("chrome-tls")
			cfg.Extract.Strategy = c.String("strategy")
			cfg.Log = config.LogConfig{Level: c.String("log-level"), Format: "text"}

			logger := config.NewLogger(cfg.Log, c.App.ErrWriter)
			p, err := pricer.NewFromConfig(&cfg, logger)
			if err != nil {
				return err
			}
			return runCheck(c.Context, p, c.Args().First(), c.Bool("envelope"), c.App.Writer)
		},
	}
}

// runCheck prints the lookup result and returns an exit error for any
// non-200 envelope.
func runCheck(ctx context.Context, p *pricer.Pricer, url string, envelope bool, out io.Writer) error {
	payload, err := json.Marshal(models.Payload{URL: url})
	if err != nil {
		return err
	}

	env := p.Handle(ctx, payload)
	if envelope {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(env); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, env.Body)
	}

	if env.StatusCode != http.StatusOK {
		return cli.Exit(fmt.Sprintf("lookup failed with status %d", env.StatusCode), 1)
	}
	return nil
}
