package httpjson

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/cbb-tracker/internal/platform/logging"
	"github.com/riskibarqy/cbb-tracker/internal/platform/throttle"
	"github.com/riskibarqy/cbb-tracker/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout   = 20 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible) CBBTracker/1.0"
	maxBodyBytes     = 8 << 20
)

var (
	errNotJSON      = crerr.New("response body is not a JSON document")
	errBodyTooLarge = crerr.New("response body is too large")
)

type Config struct {
	Provider     string
	HTTPClient   *http.Client
	UserAgent    string
	Timeout      time.Duration
	RequestDelay time.Duration
	// MaxBodyBytes caps response bodies; zero means 8 MiB.
	MaxBodyBytes int64
	Logger       *logging.Logger
}

// Fetcher issues throttled GET requests and decodes JSON bodies. It never
// retries.
type Fetcher struct {
	provider   string
	httpClient *http.Client
	userAgent  string
	throttle   *throttle.Throttle
	maxBody    int64
	logger     *logging.Logger
}

func NewFetcher(cfg Config) *Fetcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	// The caller's client is copied so its timeout and transport stay untouched.
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		*httpClient = *cfg.HTTPClient
	}
	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	httpClient.Transport = otelhttp.NewTransport(transport)
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = cfg.Timeout
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = DefaultTimeout
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = maxBodyBytes
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Fetcher{
		provider:   strings.TrimSpace(cfg.Provider),
		httpClient: httpClient,
		userAgent:  userAgent,
		throttle:   throttle.New(cfg.RequestDelay),
		maxBody:    maxBody,
		logger:     logger.With("provider", cfg.Provider),
	}
}

// Get returns the decoded document and the raw body.
func (f *Fetcher) Get(ctx context.Context, fullURL string) (any, []byte, error) {
	raw, err := f.execute(ctx, fullURL)
	if err != nil {
		return nil, nil, err
	}

	var doc any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, nil, f.retrievalError(fullURL, 0, crerr.Wrapf(errNotJSON, "decode: %v", err))
	}
	return doc, raw, nil
}

// GetObject is Get for endpoints whose top-level value is an object.
func (f *Fetcher) GetObject(ctx context.Context, fullURL string) (map[string]any, []byte, error) {
	doc, raw, err := f.Get(ctx, fullURL)
	if err != nil {
		return nil, nil, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, nil, f.retrievalError(fullURL, 0, crerr.Wrapf(errNotJSON, "unexpected top-level %T", doc))
	}
	return obj, raw, nil
}

func (f *Fetcher) execute(ctx context.Context, fullURL string) ([]byte, error) {
	if err := f.throttle.Wait(ctx); err != nil {
		return nil, f.retrievalError(fullURL, 0, fmt.Errorf("throttle wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, f.retrievalError(fullURL, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.WarnContext(ctx, "provider request failed", "url", fullURL, "error", err)
		return nil, f.retrievalError(fullURL, 0, fmt.Errorf("send request: %w", err))
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, f.retrievalError(fullURL, resp.StatusCode, fmt.Errorf("read response body: %w", readErr))
	}
	if int64(len(raw)) > f.maxBody {
		f.logger.WarnContext(ctx, "provider response too large", "url", fullURL, "limit", f.maxBody)
		return nil, f.retrievalError(fullURL, resp.StatusCode, crerr.Wrapf(errBodyTooLarge, "limit %d bytes", f.maxBody))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.WarnContext(ctx, "provider returned non-2xx", "url", fullURL, "status", resp.StatusCode)
		return nil, f.retrievalError(fullURL, resp.StatusCode, fmt.Errorf("body=%s", abbreviateBody(raw)))
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '<' {
		return nil, f.retrievalError(fullURL, resp.StatusCode, errNotJSON)
	}
	return raw, nil
}

func (f *Fetcher) retrievalError(fullURL string, status int, err error) error {
	return &usecase.RetrievalError{
		Provider:   f.provider,
		URL:        fullURL,
		StatusCode: status,
		Err:        err,
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 200
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
