package engine

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	tls "github.com/refraction-networking/utls"
)

// Default request settings for product page fetches.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 10 << 20

	userAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9"
	accept         = "text/html,application/xhtml+xml"
)

// HTTPEngine fetches pages with a single plain GET. No cookies are kept and
// nothing is retried.
type HTTPEngine struct {
	client    *http.Client
	maxBody   int64
	chromeTLS bool
}

// Option configures an HTTPEngine.
type Option func(*httpOptions)

type httpOptions struct {
	timeout   time.Duration
	maxBody   int64
	chromeTLS bool
	proxy     string
}

// WithTimeout bounds the whole request, body read included.
// Defaults to DefaultTimeout (10s).
func WithTimeout(d time.Duration) Option {
	return func(o *httpOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxBodyBytes caps how many body bytes are read.
func WithMaxBodyBytes(n int64) Option {
	return func(o *httpOptions) {
		if n > 0 {
			o.maxBody = n
		}
	}
}

// WithChromeTLS dials TLS with a Chrome ClientHello fingerprint.
func WithChromeTLS(enabled bool) Option {
	return func(o *httpOptions) { o.chromeTLS = enabled }
}

// WithProxy routes requests through an http(s) proxy. Invalid or non-http
// proxy URLs are ignored.
func WithProxy(proxy string) Option {
	return func(o *httpOptions) { o.proxy = proxy }
}

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// http.Transport cannot speak h2 over a utls connection.
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// NewHTTPEngine creates an HTTPEngine.
func NewHTTPEngine(opts ...Option) *HTTPEngine {
	o := httpOptions{timeout: DefaultTimeout, maxBody: DefaultMaxBodyBytes}
	for _, opt := range opts {
		opt(&o)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if o.chromeTLS {
		transport.DialTLSContext = chromeTLSDialer(o.timeout)
		transport.ForceAttemptHTTP2 = false
	}
	if o.proxy != "" {
		proxyURL, err := url.Parse(o.proxy)
		if err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &HTTPEngine{
		client: &http.Client{
			Transport: transport,
			Timeout:   o.timeout,
		},
		maxBody:   o.maxBody,
		chromeTLS: o.chromeTLS,
	}
}

// chromeTLSDialer returns a DialTLSContext that connects within timeout and
// handshakes with chromeH1Spec.
func chromeTLSDialer(timeout time.Duration) func(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: timeout}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialChromeTLS(ctx, dialer, network, addr)
	}
}

func dialChromeTLS(ctx context.Context, dialer *net.Dialer, network, addr string) (net.Conn, error) {
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}
	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
	if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
		conn.Close()
		return nil, fmt.Errorf("http_engine: apply tls spec: %w", err)
	}
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}

func (e *HTTPEngine) Name() string {
	if e.chromeTLS {
		return "http-chrome-tls"
	}
	return "http"
}

func (e *HTTPEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("http_engine: build request: %w", err)
	}

	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept-Language", acceptLanguage)
	httpReq.Header.Set("Accept", accept)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http_engine: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http_engine: HTTP %d for %s", resp.StatusCode, req.URL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody))
	if err != nil {
		return nil, fmt.Errorf("http_engine: read body: %w", err)
	}

	label := charsetFromContentType(resp.Header.Get("Content-Type"))
	return &FetchResult{
		HTML:       decodeBody(body, label),
		StatusCode: resp.StatusCode,
		FinalURL:   resp.Request.URL.String(),
		Charset:    label,
		Bytes:      len(body),
		EngineName: e.Name(),
	}, nil
}
