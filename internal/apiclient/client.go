// Package apiclient отправляет запросы шагов сценария в тестируемый HTTP API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/Kargones/boxing-smoke/internal/pkg/urlutil"
)

// Значения по умолчанию для Options.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxBodySize = 1 << 20 // 1 MiB
	DefaultUserAgent   = "boxing-smoke"
)

// ErrBaseURLInvalid возвращается New при некорректном базовом URL.
var ErrBaseURLInvalid = errors.New("apiclient: base URL должен содержать scheme и host")

// Request описывает один вызов API.
type Request struct {
	Method string
	// Path относительно базового URL, например "/get-boxer-by-id/7".
	Path  string
	Query url.Values
	// Body сериализуется в JSON. nil означает запрос без тела.
	Body any
}

// Response содержит сырое тело ответа. Тело не интерпретируется:
// успех шага определяет вызывающий код.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration

	// Truncated выставляется, если тело длиннее MaxBodySize.
	Truncated bool
}

// Client отправляет запросы в API.
type Client interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Options конфигурирует HTTPClient.
type Options struct {
	BaseURL string

	// Timeout ограничивает один запрос целиком, включая чтение тела.
	Timeout time.Duration

	// RateLimit - максимум запросов в секунду. 0 отключает ограничение.
	RateLimit float64

	MaxBodySize int64
	UserAgent   string

	// Transport - базовый RoundTripper, оборачивается в otelhttp. nil означает http.DefaultTransport.
	Transport http.RoundTripper
}

// HTTPClient - реализация Client поверх net/http.
type HTTPClient struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxBodySize int64
	userAgent   string
}

// New создаёт HTTPClient. Ретраев нет: первый неуспех шага завершает прогон.
func New(opts Options) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURLInvalid, opts.BaseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	if strings.TrimSpace(opts.UserAgent) == "" {
		opts.UserAgent = DefaultUserAgent
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	c := &HTTPClient{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: otelhttp.NewTransport(transport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return "HTTP " + r.Method + " " + r.URL.Path
				}),
			),
		},
		maxBodySize: opts.MaxBodySize,
		userAgent:   opts.UserAgent,
	}
	if opts.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return c, nil
}

// BaseURL возвращает нормализованный базовый URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Do выполняет запрос и читает тело ответа. HTTP статус не считается ошибкой.
func (c *HTTPClient) Do(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("ожидание rate limiter: %w", err)
		}
	}

	target, err := urlutil.JoinURL(c.baseURL, req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("сериализация тела запроса: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("создание запроса: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // тело уже прочитано

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("чтение ответа %s %s: %w", method, req.Path, err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Duration:   time.Since(start),
	}
	if int64(len(raw)) > c.maxBodySize {
		raw = raw[:c.maxBodySize]
		out.Truncated = true
	}
	out.Body = decodeBody(raw, resp.Header.Get("Content-Type"))

	return out, nil
}
