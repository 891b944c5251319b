package pricer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/amzprice/config"
	"github.com/use-agent/amzprice/engine"
	"github.com/use-agent/amzprice/extractor"
	"github.com/use-agent/amzprice/mock"
	"github.com/use-agent/amzprice/models"
	"github.com/use-agent/amzprice/pricer"
)

const page = `<html><body>
<span id="productTitle" class="a-size-large">  Acme Widget  </span>
<span id="priceblock_ourprice" class="a-color-price">$1,234.56</span>
</body></html>`

func newPricer(eng engine.Engine) *pricer.Pricer {
	return pricer.New(eng, extractor.NewRegex(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func decode(t *testing.T, env models.Envelope) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(env.Body), &body))
	return body
}

func TestHandle_Success(t *testing.T) {
	var fetched string
	eng := mock.Page(page)
	inner := eng.FetchFn
	eng.FetchFn = func(ctx context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
		fetched = req.URL
		return inner(ctx, req)
	}

	env := newPricer(eng).Handle(context.Background(), []byte(`{"url":" www.amazon.com/dp/B0TEST#top "}`))

	require.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "application/json", env.Headers["Content-Type"])
	assert.Equal(t, "https://www.amazon.com/dp/B0TEST", fetched)

	body := decode(t, env)
	assert.Len(t, body, 5)
	assert.Equal(t, "https://www.amazon.com/dp/B0TEST", body["url"])
	assert.Equal(t, "Acme Widget", body["title"])
	assert.Equal(t, "$1,234.56", body["price"])
	assert.Equal(t, 1234.56, body["price_amount"])
	assert.Equal(t, "$", body["currency"])
}

func TestHandle_NothingExtracted(t *testing.T) {
	env := newPricer(mock.Page("<html><body>Nothing here</body></html>")).
		Handle(context.Background(), []byte(`{"queryStringParameters":{"url":"amazon.de/dp/X"}}`))

	require.Equal(t, http.StatusOK, env.StatusCode)
	assert.JSONEq(t,
		`{"url":"https://amazon.de/dp/X","title":null,"price":null,"price_amount":null,"currency":null}`,
		env.Body)
}

func TestHandle_PriceWithoutNumber(t *testing.T) {
	env := newPricer(mock.Page(`<span class="a-offscreen">Currently unavailable</span>`)).
		Handle(context.Background(), []byte(`{"url":"amazon.com/dp/X"}`))

	body := decode(t, env)
	assert.Equal(t, "Currently unavailable", body["price"])
	assert.Nil(t, body["price_amount"])
	assert.Nil(t, body["currency"])
}

func TestHandle_PriceBeyondFloatRange(t *testing.T) {
	html := `<span class="a-offscreen">$` + strings.Repeat("9", 400) + `</span>`
	env := newPricer(mock.Page(html)).Handle(context.Background(), []byte(`{"url":"amazon.com/dp/X"}`))

	require.Equal(t, http.StatusOK, env.StatusCode)
	body := decode(t, env)
	assert.Nil(t, body["price_amount"])
	assert.Equal(t, "$", body["currency"])
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var line map[string]any
		require.NoError(t, json.Unmarshal(raw, &line))
		lines = append(lines, line)
	}
	return lines
}

func TestHandle_LogsReturnedStatus(t *testing.T) {
	tests := []struct {
		name   string
		eng    engine.Engine
		msg    string
		status float64
	}{
		{"success", mock.Page(page), "lookup", 200},
		{"panic", &mock.Engine{FetchFn: func(context.Context, *engine.FetchRequest) (*engine.FetchResult, error) {
			panic("engine exploded")
		}}, "lookup rejected", 500},
		{"blocked", mock.Page("robot check"), "lookup rejected", 502},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := pricer.New(tt.eng, extractor.NewRegex(), slog.New(slog.NewJSONHandler(&buf, nil)))

			env := p.Handle(context.Background(), []byte(`{"url":"amazon.com/dp/X"}`))
			require.Equal(t, int(tt.status), env.StatusCode)

			lines := logLines(t, &buf)
			last := lines[len(lines)-1]
			assert.Equal(t, tt.msg, last["msg"])
			assert.Equal(t, tt.status, last["status"])
			assert.Equal(t, "amazon.com/dp/X", last["url"])
			for _, line := range lines {
				if line["msg"] == "lookup" {
					assert.Equal(t, float64(http.StatusOK), line["status"])
					assert.Equal(t, 200.0, tt.status, "success logged for a failed request")
				}
			}
		})
	}
}

func TestHandle_EarlyExits(t *testing.T) {
	unreachable := &mock.Engine{FetchFn: func(context.Context, *engine.FetchRequest) (*engine.FetchResult, error) {
		t.Fatal("fetch must not be called")
		return nil, nil
	}}

	tests := []struct {
		name    string
		payload string
		status  int
		body    string
	}{
		{"not an object", `[1,2,3]`, 400, `{"error":"Invalid request payload."}`},
		{"missing url", `{"queryStringParameters":{},"body":"not json"}`, 400, `{"error":"Missing required 'url' parameter."}`},
		{"blank url", `{"url":"   "}`, 400, `{"error":"Invalid URL."}`},
		{"no host", `{"url":"https://"}`, 400, `{"error":"Invalid URL."}`},
		{"disallowed host", `{"url":"https://notamazon.com/dp/X"}`, 400, `{"error":"URL must be an Amazon product page."}`},
		{"lookalike host", `{"url":"amazon.fraud.com/dp/X"}`, 400, `{"error":"URL must be an Amazon product page."}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newPricer(unreachable).Handle(context.Background(), []byte(tt.payload))
			assert.Equal(t, tt.status, env.StatusCode)
			assert.JSONEq(t, tt.body, env.Body)
		})
	}
}

func TestHandle_Blocked(t *testing.T) {
	for _, html := range []string{
		`<title>Robot Check</title>` + page,
		page + `<!-- CAPTCHA -->`,
		`<form action="/errors/validateCaptcha"></form>`,
	} {
		env := newPricer(mock.Page(html)).Handle(context.Background(), []byte(`{"url":"amazon.com/dp/X"}`))
		assert.Equal(t, http.StatusBadGateway, env.StatusCode)
		assert.JSONEq(t,
			`{"error":"Amazon blocked the request.","message":"Received a robot check or captcha page."}`,
			env.Body)
	}
}

func TestHandle_FetchError(t *testing.T) {
	eng := &mock.Engine{FetchFn: func(context.Context, *engine.FetchRequest) (*engine.FetchResult, error) {
		return nil, errors.New("http_engine: do request: context deadline exceeded")
	}}

	env := newPricer(eng).Handle(context.Background(), []byte(`{"url":"amazon.com/dp/X"}`))

	assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
	assert.JSONEq(t,
		`{"error":"Failed to fetch product data.","message":"http_engine: do request: context deadline exceeded"}`,
		env.Body)
}

func TestHandle_PanicBecomes500(t *testing.T) {
	eng := &mock.Engine{FetchFn: func(context.Context, *engine.FetchRequest) (*engine.FetchResult, error) {
		panic("engine exploded")
	}}

	env := newPricer(eng).Handle(context.Background(), []byte(`{"url":"amazon.com/dp/X"}`))

	assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
	body := decode(t, env)
	assert.Equal(t, "Failed to fetch product data.", body["error"])
	assert.Equal(t, "engine exploded", body["message"])
}

func TestHandle_Idempotent(t *testing.T) {
	p := newPricer(mock.Page(page))
	payload := []byte(`{"url":"amazon.com/dp/X"}`)
	assert.Equal(t, p.Handle(context.Background(), payload), p.Handle(context.Background(), payload))
}

func TestLookup_ErrorsArePriceErrors(t *testing.T) {
	p := newPricer(mock.Page(page))

	_, err := p.Lookup(context.Background(), "example.com")
	var pe *models.PriceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, models.ErrCodeDisallowedHost, pe.Code)

	prod, err := p.Lookup(context.Background(), "https://amazon.co.uk/dp/X")
	require.NoError(t, err)
	assert.Equal(t, "https://amazon.co.uk/dp/X", prod.URL)
}

func TestHandle_SelectorStrategy(t *testing.T) {
	p := pricer.New(mock.Page(page), extractor.NewSelector(), nil)
	env := p.Handle(context.Background(), []byte(`{"url":"amazon.com/dp/X"}`))

	body := decode(t, env)
	assert.Equal(t, "Acme Widget", body["title"])
	assert.Equal(t, 1234.56, body["price_amount"])
}

func TestBuild(t *testing.T) {
	prod := pricer.Build("https://amazon.com/dp/X", extractor.Fields{Price: "1.234,56 €"})
	assert.Nil(t, prod.Title)
	require.NotNil(t, prod.PriceAmount)
	assert.Equal(t, 1234.56, *prod.PriceAmount)
	require.NotNil(t, prod.Currency)
	assert.Equal(t, "€", *prod.Currency)
	assert.False(t, strings.Contains(prod.URL, "#"))
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{Extract: config.ExtractConfig{Strategy: "selector"}}
	p, err := pricer.NewFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.NotNil(t, p)

	cfg.Extract.Strategy = "xpath"
	_, err = pricer.NewFromConfig(cfg, nil)
	assert.Error(t, err)
}
