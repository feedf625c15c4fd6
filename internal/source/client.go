// ============================================================================
// Wachturm - Telemetrie-Konsole
// ============================================================================
//
// Package:     source
// Description: HTTP client for the telemetry backend
// Author:      Mike Stoffels
// Created:     2026-09-15
// License:     MIT
// ============================================================================

package source

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

	"github.com/msto63/wachturm/internal/monitor"
	"go.uber.org/zap"
)

// Endpoint paths relative to the base URL
const (
	PathLogs        = "/logs/intruder"
	PathLogsPort    = "/logs/intruder/port/"
	PathLogsSource  = "/logs/intruder/source/"
	PathLogsType    = "/logs/intruder/type/"
	PathNode        = "/node"
	maxResponseBody = 16 << 20
)

// Client fetches intrusion logs and node samples from one backend.
// It implements monitor.LogSource and monitor.NodeSource.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the transport timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the backend at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// LogsPath returns the endpoint path for a query
func LogsPath(q monitor.Query) string {
	switch q.Mode {
	case monitor.FilterByPort:
		return PathLogsPort + url.PathEscape(q.Value)
	case monitor.FilterBySourceIP:
		return PathLogsSource + url.PathEscape(q.Value)
	case monitor.FilterByType:
		return PathLogsType + url.PathEscape(q.Value)
	default:
		return PathLogs
	}
}

// FetchLogs returns the backend's current snapshot for q, oldest first.
// A filtered query without a value is rejected before any request is made.
func (c *Client) FetchLogs(ctx context.Context, q monitor.Query) ([]monitor.LogRecord, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	op := "GET " + LogsPath(q)
	body, err := c.get(ctx, op, LogsPath(q))
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, monitor.NewShapeError(op, errors.New("response body is not an array"))
	}

	var wire []wireRecord
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, monitor.NewShapeError(op, err)
	}

	records := make([]monitor.LogRecord, len(wire))
	for i, w := range wire {
		records[i] = w.toRecord()
	}
	c.logger.Debug("logs fetched", zap.String("query", q.String()), zap.Int("count", len(records)))
	return records, nil
}

// FetchNode returns the latest node resource sample
func (c *Client) FetchNode(ctx context.Context) (monitor.NodeSample, error) {
	op := "GET " + PathNode
	body, err := c.get(ctx, op, PathNode)
	if err != nil {
		return monitor.NodeSample{}, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return monitor.NodeSample{}, monitor.NewShapeError(op, errors.New("response body is not an object"))
	}

	var w wireNode
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return monitor.NodeSample{}, monitor.NewShapeError(op, err)
	}
	return w.toSample(), nil
}

func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	// path is already escaped, so it is appended verbatim
	endpoint := c.baseURL.String() + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, monitor.NewTransportError(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, monitor.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil, monitor.NewTransportError(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, monitor.NewTransportError(op, err)
	}
	return body, nil
}
