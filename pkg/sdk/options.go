package wvadmin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	headers    map[string]string
	httpClient *http.Client

	valkeyAddrs    []string
	valkeyPassword string
	sessionTTL     time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEndpoint sets the Weaviate REST endpoint and its API key.
// An empty key sends no Authorization header.
func WithEndpoint(endpoint, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = endpoint
		c.apiKey = apiKey
	})
}

// WithTimeout bounds every cluster call. Default: 20s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHeader adds a header sent with every cluster call,
// e.g. X-OpenAI-Api-Key for vectorizer modules.
func WithHeader(name, value string) Option {
	return optionFunc(func(c *clientConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[name] = value
	})
}

// WithHTTPClient replaces the HTTP client. WithTimeout is then ignored.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithValkeySessions keeps edit sessions in Valkey instead of process memory,
// so they survive restarts and are shared between replicas.
func WithValkeySessions(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.valkeyAddrs = []string{addr}
		c.valkeyPassword = password
	})
}

// WithSessionTTL sets how long an idle session is kept. Default: 1h.
func WithSessionTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.sessionTTL = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
