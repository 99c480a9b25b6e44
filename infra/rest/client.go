package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	coremetrics "github.com/powerclass/marketctl/core/metrics"
	"github.com/powerclass/marketctl/infra/logger"
)

// Config defines settings for the game API client.
type Config struct {
	// BaseURL is the root of the backend API, e.g. http://localhost:8000.
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	return nil
}

// Client is a typed HTTP client for the game backend. Every endpoint is a
// method. There is no retry or backoff; failures surface to the caller
// exactly once.
type Client struct {
	base string
	http *http.Client
	log  logger.Logger
	sink coremetrics.Sink

	capOnce sync.Once
	caps    Capabilities
	capErr  error
}

// New creates a Client from the configuration. A nil sink disables metrics.
func New(cfg Config, log logger.Logger, sink coremetrics.Sink) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("api config: %w", err)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	return &Client{
		base: strings.TrimSuffix(cfg.BaseURL, "/"),
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:  log,
		sink: sink,
	}, nil
}

// callOpts identifies one endpoint invocation.
type callOpts struct {
	method string
	// route is the endpoint template used for logging and metrics labels.
	route string
	// path is the concrete request path.
	path  string
	query url.Values
	body  any
	// sessionScoped marks endpoints whose 404 means the stored session is
	// invalid rather than a missing sub-resource.
	sessionScoped bool
}

func (c *Client) do(ctx context.Context, opts callOpts, out any) error {
	reqID := uuid.NewString()
	u := c.base + opts.path
	if len(opts.query) > 0 {
		u += "?" + opts.query.Encode()
	}

	var body io.Reader
	if opts.body != nil {
		data, err := json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, opts.method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if opts.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugw("api request", map[string]any{
		"method":     opts.method,
		"endpoint":   opts.route,
		"request_id": reqID,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		_ = c.sink.RecordRequest(coremetrics.RequestEvent{
			Method: opts.method, Endpoint: opts.route, Status: 0,
			Duration: elapsed, RequestID: reqID, Time: start,
		})
		c.log.Errorf("api %s %s: %v", opts.method, opts.route, err)
		return fmt.Errorf("api %s: %w", opts.route, err)
	}
	defer func() { _ = resp.Body.Close() }()

	_ = c.sink.RecordRequest(coremetrics.RequestEvent{
		Method: opts.method, Endpoint: opts.route, Status: resp.StatusCode,
		Duration: elapsed, RequestID: reqID, Time: start,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Endpoint: opts.route}
		data, _ := io.ReadAll(resp.Body)
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(data, &detail) == nil && detail.Detail != "" {
			apiErr.Detail = detail.Detail
		} else if len(data) > 0 {
			apiErr.Detail = strings.TrimSpace(string(data))
		}
		if resp.StatusCode == http.StatusNotFound && opts.sessionScoped {
			apiErr.Err = ErrSessionNotFound
		}
		c.log.Errorf("api %s %s: %v", opts.method, opts.route, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", opts.route, err)
	}
	return nil
}
