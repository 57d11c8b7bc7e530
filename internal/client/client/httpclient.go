package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/embario/jukeclient/internal/common"
	"github.com/embario/jukeclient/internal/logging"
)

const defaultTimeout = 30 * time.Second

// HTTPClient is the net/http Executor.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	userAgent string
	log       logging.Logger
	newID     func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.client = hc }
}

func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) { c.userAgent = ua }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient returns an Executor rooted at baseURL. Trailing slashes on
// baseURL are ignored. A zero timeout means 30s.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logging.Nop(),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL, without a trailing slash.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Execute(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return &UnexpectedError{Op: "encode request body", Err: err}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.url(req.Path, req.Query), body)
	if err != nil {
		return &UnexpectedError{Op: "build request", Err: err}
	}

	requestID := c.newID()
	c.addHeaders(httpReq, req, requestID)

	log := c.log.With("method", method, "path", httpReq.URL.Path, "request_id", requestID)
	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn(ctx, "request failed", "duration", time.Since(start), "error", err)
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return &NetworkError{Err: err}
	}
	log.Debug(ctx, "request completed", "status", resp.StatusCode, "duration", time.Since(start), "bytes", len(data))

	return parseResponse(resp.StatusCode, data, out)
}

func (c *HTTPClient) url(path string, query map[string]string) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")

	values := url.Values{}
	for k, v := range query {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}

func (c *HTTPClient) addHeaders(httpReq *http.Request, req Request, requestID string) {
	httpReq.Header.Set("Accept", common.ContentTypeJSON)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	if req.Token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.AuthorizationScheme+" "+req.Token)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
}

func parseResponse(status int, data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)

	if status >= 200 && status < 300 {
		if status == http.StatusAccepted || status == http.StatusNoContent || len(trimmed) == 0 || out == nil {
			return nil
		}
		if err := json.Unmarshal(trimmed, out); err != nil {
			return &UnexpectedError{Op: "decode response", Err: err}
		}
		return nil
	}

	apiErr := &APIError{Status: status, Message: errorMessage(status, trimmed)}
	if len(trimmed) > 0 && json.Valid(trimmed) {
		apiErr.Payload = json.RawMessage(trimmed)
	}
	return apiErr
}
