// Package weaviate is the client for a Weaviate cluster. It implements the
// schema, config, object, tenant, search, import, rbac and readiness contracts
// of the usecases. Most calls go through the official Go client; class config
// writes, exact object reads and rbac documents use raw REST calls.
package weaviate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	wvsdk "github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/fault"
	"go.uber.org/zap"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	"github.com/raywlfun/WeaviateDBCluster/internal/metrics"
)

const maxResponseBytes = 32 << 20

// Config holds the cluster connection settings.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	// Headers are sent with every request, e.g. X-OpenAI-Api-Key for vectorizer
	// modules. Empty values are skipped.
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client calls the Weaviate REST and GraphQL APIs.
type Client struct {
	base    string
	http    *http.Client
	sdk     *wvsdk.Client
	apiKey  string
	headers map[string]string
	logger  *zap.Logger
}

// NewClient creates a Weaviate REST client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	base := strings.TrimRight(cfg.Endpoint, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint must be http or https, got %q", cfg.Endpoint)
	}
	if u.Path != "" || u.RawQuery != "" {
		return nil, fmt.Errorf("endpoint must not carry a path or query, got %q", cfg.Endpoint)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	headers := make(map[string]string, len(cfg.Headers)+1)
	for k, v := range cfg.Headers {
		if v != "" {
			headers[k] = v
		}
	}
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	sdk, err := wvsdk.NewClient(wvsdk.Config{
		Host:             u.Host,
		Scheme:           u.Scheme,
		Headers:          headers,
		ConnectionClient: hc,
	})
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	return &Client{base: base, http: hc, sdk: sdk, apiKey: cfg.APIKey, headers: cfg.Headers, logger: logger}, nil
}

// track runs one cluster call and records its duration and outcome.
func (c *Client) track(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)
	metrics.WeaviateRequestDuration.WithLabelValues(op).Observe(duration.Seconds())

	status := "success"
	if err != nil {
		status = "error"
		c.logger.Debug("weaviate call failed",
			zap.String("op", op), zap.Duration("duration", duration), zap.Error(err))
	} else {
		c.logger.Debug("weaviate call", zap.String("op", op), zap.Duration("duration", duration))
	}
	metrics.WeaviateRequestsTotal.WithLabelValues(op, status).Inc()
	return err
}

// sdkCall is track plus status interpretation of Go client errors: 404 becomes
// notFound when it is set, anything else becomes *domain.RemoteError.
func (c *Client) sdkCall(op string, notFound error, fn func() error) error {
	err := c.track(op, fn)
	if err == nil {
		return nil
	}
	return sdkError(op, err, notFound)
}

func sdkError(op string, err error, notFound error) error {
	var ce *fault.WeaviateClientError
	if !errors.As(err, &ce) {
		return &domain.RemoteError{Op: op, Message: err.Error()}
	}
	if ce.StatusCode <= 0 {
		msg := ce.Msg
		if ce.DerivedFromError != nil {
			msg = ce.DerivedFromError.Error()
		}
		return &domain.RemoteError{Op: op, Message: msg}
	}
	if ce.StatusCode == http.StatusNotFound && notFound != nil {
		return fmt.Errorf("%s: %w", op, notFound)
	}
	return remoteError(op, response{status: ce.StatusCode, body: []byte(ce.Msg)})
}

// request is one REST call.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   []byte
}

// response is a completed call. Status is never 0.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status < 300 }

// do sends req and records call metrics. Transport failures are returned as
// *domain.RemoteError with StatusCode 0.
func (c *Client) do(ctx context.Context, req request) (response, error) {
	target := c.base + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader = http.NoBody
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return response{}, fmt.Errorf("%s: build request: %w", req.op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range c.headers {
		if v != "" {
			httpReq.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)
	metrics.WeaviateRequestDuration.WithLabelValues(req.op).Observe(duration.Seconds())

	if err != nil {
		metrics.WeaviateRequestsTotal.WithLabelValues(req.op, "error").Inc()
		c.logger.Warn("weaviate request failed",
			zap.String("op", req.op), zap.Duration("duration", duration), zap.Error(err))
		return response{}, &domain.RemoteError{Op: req.op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.WeaviateRequestsTotal.WithLabelValues(req.op, "error").Inc()
		return response{}, &domain.RemoteError{Op: req.op, StatusCode: resp.StatusCode, Message: err.Error()}
	}

	status := "success"
	if resp.StatusCode >= 300 {
		status = "error"
	}
	metrics.WeaviateRequestsTotal.WithLabelValues(req.op, status).Inc()
	c.logger.Debug("weaviate request",
		zap.String("op", req.op),
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	return response{status: resp.StatusCode, body: data}, nil
}

// call is do plus status interpretation: 404 becomes notFound when it is set,
// any other non-2xx becomes *domain.RemoteError.
func (c *Client) call(ctx context.Context, req request, notFound error) ([]byte, error) {
	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound && notFound != nil {
		return nil, fmt.Errorf("%s: %w", req.op, notFound)
	}
	if !resp.ok() {
		return nil, remoteError(req.op, resp)
	}
	return resp.body, nil
}

// remoteError extracts the server message from a Weaviate error body.
// Weaviate reports errors as {"error":[{"message":"..."}]}; some endpoints use
// {"message":"..."} or plain text.
func remoteError(op string, resp response) error {
	msg := ""
	if gjson.ValidBytes(resp.body) {
		doc := gjson.ParseBytes(resp.body)
		var parts []string
		doc.Get("error.#.message").ForEach(func(_, v gjson.Result) bool {
			parts = append(parts, v.String())
			return true
		})
		msg = strings.Join(parts, "; ")
		if msg == "" {
			msg = doc.Get("message").String()
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(resp.body))
	}
	if msg == "" {
		msg = http.StatusText(resp.status)
	}
	return &domain.RemoteError{Op: op, StatusCode: resp.status, Message: msg}
}

func classPath(collection string) string {
	return "/v1/schema/" + url.PathEscape(collection)
}

func tenantQuery(tenant string) url.Values {
	if tenant == "" {
		return nil
	}
	return url.Values{"tenant": []string{tenant}}
}
