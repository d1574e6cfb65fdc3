// Package controller is the HTTP client for the wireless controller's
// configuration API.
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lcalzada-xor/wdash/internal/core/domain"
	"github.com/lcalzada-xor/wdash/internal/core/ports"
	"github.com/lcalzada-xor/wdash/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

// Options configures a Client.
type Options struct {
	BaseURL           string
	Site              string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	// Transport overrides the base round tripper; it is still wrapped for tracing.
	Transport http.RoundTripper
}

// Client implements ports.ControllerClient over the controller REST API.
type Client struct {
	base    *url.URL
	site    string
	token   string
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a client. Outbound requests are rate limited and traced.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, opts.BaseURL)
	}
	if opts.Site == "" {
		opts.Site = "default"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		base:  base,
		site:  opts.Site,
		token: opts.Token,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(transport),
		},
		limiter: rate.NewLimiter(limit, opts.Burst),
	}, nil
}

// ListServices returns every wireless service as sent by the controller.
func (c *Client) ListServices(ctx context.Context) ([]domain.RawRecord, error) {
	var out []domain.RawRecord
	err := c.do(ctx, "list_services", http.MethodGet, c.sitePath("wireless", "services"), nil, func(body []byte) error {
		var err error
		out, err = decodeList(body)
		return err
	})
	return out, err
}

// GetService returns a single service; an unknown id yields domain.ErrServiceNotFound.
func (c *Client) GetService(ctx context.Context, id string) (domain.RawRecord, error) {
	var out domain.RawRecord
	err := c.do(ctx, "get_service", http.MethodGet, c.sitePath("wireless", "services", id), nil, func(body []byte) error {
		var err error
		out, err = decodeOne(body)
		return err
	})
	if isNotFound(err) || (err == nil && out == nil) {
		return nil, fmt.Errorf("service %s: %w", id, domain.ErrServiceNotFound)
	}
	return out, err
}

// UpdateService replaces a service's configuration.
func (c *Client) UpdateService(ctx context.Context, id string, payload domain.ServicePayload) error {
	err := c.do(ctx, "update_service", http.MethodPut, c.sitePath("wireless", "services", id), payload, nil)
	if isNotFound(err) {
		return fmt.Errorf("service %s: %w", id, domain.ErrServiceNotFound)
	}
	return err
}

// ListStations returns every associated client as sent by the controller.
func (c *Client) ListStations(ctx context.Context) ([]domain.RawRecord, error) {
	var out []domain.RawRecord
	err := c.do(ctx, "list_stations", http.MethodGet, c.sitePath("wireless", "stations"), nil, func(body []byte) error {
		var err error
		out, err = decodeList(body)
		return err
	})
	return out, err
}

func (c *Client) sitePath(parts ...string) string {
	segs := []string{"api", "v1", "sites", url.PathEscape(c.site)}
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return "/" + strings.Join(segs, "/")
}

func (c *Client) do(ctx context.Context, op, method, path string, in any, decode func([]byte) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RequestError{Op: op, Err: err}
	}

	var (
		body io.Reader
		err  error
	)
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	u := *c.base
	u.RawPath = strings.TrimRight(c.base.EscapedPath(), "/") + path
	if u.Path, err = url.PathUnescape(u.RawPath); err != nil {
		return &RequestError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	telemetry.ControllerRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.ControllerRequestsTotal.WithLabelValues(op, "error").Inc()
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	telemetry.ControllerRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("controller request rejected", "op", op, "status", resp.StatusCode)
		return &StatusError{Op: op, Code: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
	}
	if decode == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := decode(data); err != nil {
		return &RequestError{Op: op, Err: err}
	}
	return nil
}

func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

// decodeList accepts a bare array or a {"data": [...]} envelope.
func decodeList(data []byte) ([]domain.RawRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []domain.RawRecord
		if err := newDecoder(trimmed).Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var env struct {
		Data []domain.RawRecord `json:"data"`
	}
	if err := newDecoder(trimmed).Decode(&env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// decodeOne accepts a bare object, {"data": {...}} or {"data": [{...}]}.
func decodeOne(data []byte) (domain.RawRecord, error) {
	var rec domain.RawRecord
	if err := newDecoder(data).Decode(&rec); err != nil {
		return nil, err
	}
	inner, ok := rec["data"]
	if !ok || len(rec) != 1 {
		return rec, nil
	}
	switch v := inner.(type) {
	case map[string]any:
		return v, nil
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
		if first, ok := v[0].(map[string]any); ok {
			return first, nil
		}
	}
	return rec, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ ports.ControllerClient = (*Client)(nil)
