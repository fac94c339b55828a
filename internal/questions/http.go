package questions

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/abhisek/quizzer/internal/quiz"
)

// DefaultHTTPTimeout bounds a single fetch when the context has no deadline.
const DefaultHTTPTimeout = 10 * time.Second

// HTTP fetches a bank from a JSON endpoint, such as a json-server
// "/questions" route returning a bare array.
type HTTP struct {
	url     string
	timeout time.Duration
	client  *fasthttp.Client
}

// HTTPOption configures an HTTP source.
type HTTPOption func(*HTTP)

// WithClient replaces the fasthttp client.
func WithClient(c *fasthttp.Client) HTTPOption {
	return func(h *HTTP) {
		h.client = c
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTP) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHTTP returns a source fetching url.
func NewHTTP(url string, opts ...HTTPOption) *HTTP {
	h := &HTTP{
		url:     url,
		timeout: DefaultHTTPTimeout,
		client: &fasthttp.Client{
			Name:                "quizzer",
			MaxIdleConnDuration: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Load performs a GET. A context deadline shorter than the configured
// timeout takes precedence. Cancelling ctx does not interrupt a request in
// flight; the result is reported as ctx.Err() once the request returns.
func (h *HTTP) Load(ctx context.Context) ([]quiz.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(h.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	timeout := h.timeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(dl))
	}

	if err := h.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("fetch questions from %s: %w", h.url, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("fetch questions from %s: unexpected status %d", h.url, code)
	}

	return Parse(resp.Body())
}
