// Package apifootball is the HTTP client for the API-Football v3 REST API.
package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	apimodel "github.com/riskibarqy/football-cache/internal/domain/apifootball"
	"github.com/riskibarqy/football-cache/internal/platform/logging"
	"github.com/riskibarqy/football-cache/internal/platform/resilience"
	"github.com/riskibarqy/football-cache/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL        = "https://v3.football.api-sports.io"
	defaultAPIHost        = "v3.football.api-sports.io"
	defaultConnectTimeout = 10 * time.Second
	defaultReadTimeout    = 30 * time.Second
	maxBodyBytes          = 6 << 20
)

// ErrUpstream is matched by every failure returned from Client.
var ErrUpstream = crerr.New("api-football upstream request failed")

var errTransient = crerr.New("api-football transient failure")

type ClientConfig struct {
	HTTPClient        *http.Client
	BaseURL           string
	APIKey            string
	APIHost           string
	ConnectTimeout    time.Duration
	ReadTimeout       time.Duration
	MaxRetries        int
	RequestsPerMinute int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
	Now               func() time.Time
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiHost    string
	maxRetries int
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
	now        func() time.Time
}

var _ usecase.FootballAPI = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(connectTimeout, readTimeout)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiHost := strings.TrimSpace(cfg.APIHost)
	if apiHost == "" {
		apiHost = defaultAPIHost
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger = logger.With("component", "apifootball")
	onChange := func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		apiHost:    apiHost,
		maxRetries: max(cfg.MaxRetries, 0),
		limiter:    limiter,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker("api-football", cfg.CircuitBreaker, onChange),
		now:        now,
	}
}

func newHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.ResponseHeaderTimeout = readTimeout

	return &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   connectTimeout + readTimeout,
	}
}

// IsConfigured reports whether an API key is set. Calls are attempted either way.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// CurrentSeason is the football season running at the client's clock.
func (c *Client) CurrentSeason() int {
	return apimodel.CurrentSeason(c.now())
}

// getEnvelope issues a GET and decodes the standard response envelope.
func getEnvelope[T any](ctx context.Context, c *Client, path string, query url.Values) (*apimodel.Envelope[T], error) {
	var out apimodel.Envelope[T]
	if err := c.doJSON(ctx, path, query, &out); err != nil {
		return nil, err
	}
	if hasUpstreamErrors(out.Errors) {
		c.logger.WarnContext(ctx, "api-football reported errors", "path", path, "errors", out.Errors)
	}
	if out.Response == nil {
		out.Response = []T{}
	}
	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	encoded := query.Encode()
	if encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.DoContext(ctx, path+"?"+encoded, func() (any, error) {
		var raw []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, path, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, err
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "api-football circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return fmt.Errorf("%w: %w: %v", usecase.ErrDependencyUnavailable, ErrUpstream, err)
	}
	if err != nil {
		if stderrors.Is(err, ErrUpstream) {
			return err
		}
		return fmt.Errorf("%w: GET %s: %w", ErrUpstream, path, err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Wrapf(ErrUpstream, "unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrapf(ErrUpstream, "decode %s payload: %v", path, err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, path, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%w: rate limiter: %w", ErrUpstream, err)
			}
		}

		started := time.Now()
		raw, status, err := c.send(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = err
		case status >= 200 && status < 300:
			c.logger.DebugContext(ctx, "api-football request completed", "path", path, "status", status, "took", time.Since(started))
			return raw, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: %w: status=%d body=%s", ErrUpstream, errTransient, status, abbreviateBody(raw))
		default:
			lastErr = fmt.Errorf("%w: status=%d body=%s", ErrUpstream, status, abbreviateBody(raw))
			c.logger.WarnContext(ctx, "api-football request rejected", "path", path, "status", status)
			return nil, lastErr
		}

		if attempt == c.maxRetries || ctx.Err() != nil {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %w", ErrUpstream, ctx.Err())
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = ErrUpstream
	}
	c.logger.WarnContext(ctx, "api-football request failed", "path", path, "error", lastErr)
	return nil, lastErr
}

// send performs one GET and reads at most maxBodyBytes of the body.
func (c *Client) send(ctx context.Context, fullURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, 0, crerr.Wrapf(ErrUpstream, "build request: %v", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w: send request: %s", ErrUpstream, errTransient, c.sanitize(err.Error()))
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %w: read response body: %s", ErrUpstream, errTransient, c.sanitize(err.Error()))
	}

	raw := make([]byte, buf.Len())
	copy(raw, buf.B)
	return raw, resp.StatusCode, nil
}

func (c *Client) sanitize(value string) string {
	return sanitizeSensitiveText(value, c.apiKey)
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" || key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func hasUpstreamErrors(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func params(kv ...string) url.Values {
	values := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		values.Set(kv[i], kv[i+1])
	}
	return values
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
