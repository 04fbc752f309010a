package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// Client is the shared HTTP client for the auction backend. The supplied
// transport is expected to be the session guard, so every call here already
// carries the scope check and 401 eviction.
type Client struct {
	resolver     *Resolver
	httpClient   *http.Client
	logger       *slog.Logger
	localTimeout time.Duration
	onFallback   func()
}

// ClientConfig groups Client dependencies.
type ClientConfig struct {
	Resolver  *Resolver
	Transport http.RoundTripper
	Logger    *slog.Logger
	// LocalTimeout bounds the attempt against the local origin so the
	// production fallback can proceed promptly.
	LocalTimeout time.Duration
	// OnFallback is invoked when a request falls back to production.
	OnFallback func()
}

// NewClient constructs a Client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.LocalTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		resolver:     cfg.Resolver,
		httpClient:   &http.Client{Transport: cfg.Transport},
		logger:       cfg.Logger,
		localTimeout: timeout,
		onFallback:   cfg.OnFallback,
	}
}

// Do performs one logical request. A connection-level failure against the
// local origin retries once against production and persists that origin;
// application-level responses propagate unchanged.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) (*http.Response, error) {
	origin := c.resolver.Resolve(ctx)
	resp, err := c.attempt(ctx, origin, method, path, query, body, contentType)
	if err == nil {
		return resp, nil
	}
	if !c.resolver.IsLocal(origin) || !isConnError(err) {
		return nil, err
	}

	production := c.resolver.Production()
	if c.logger != nil {
		c.logger.Warn("local origin unreachable, falling back",
			slog.String("local", origin), slog.String("production", production))
	}
	resp, retryErr := c.attempt(ctx, production, method, path, query, body, contentType)
	if retryErr != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, retryErr)
	}
	c.resolver.Persist(ctx, production)
	if c.onFallback != nil {
		c.onFallback()
	}
	return resp, nil
}

func (c *Client) attempt(ctx context.Context, origin, method, path string, query url.Values, body []byte, contentType string) (*http.Response, error) {
	if c.resolver.IsLocal(origin) {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.localTimeout)
		defer cancel()
	}

	target := strings.TrimRight(origin, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// isConnError separates connection-level failures (timeout, refused
// connection, DNS) from everything else. Guard rejections and application
// responses must never trigger the origin fallback.
func isConnError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, shared.ErrScopeViolation) || errors.Is(err, shared.ErrSessionEvicted) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

// Probe checks that the resolved origin answers its health endpoint. It
// rides the normal Do path, so a dead local origin flips the resolver to
// production just like an interactive request would.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "/health", nil, nil, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("upstream health status %d", resp.StatusCode)
	}
	return nil
}

// envelope is the standard response wrapper the auction backend emits.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// GetJSON issues a GET and decodes the response payload into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

// PostJSON issues a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, body, out)
}

// PutJSON issues a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, body, out)
}

// PatchJSON issues a PATCH with a JSON body.
func (c *Client) PatchJSON(ctx context.Context, path string, body, out any) error {
	return c.sendJSON(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.Do(ctx, http.MethodDelete, path, nil, nil, "")
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// Upload sends a multipart form with one file part plus extra fields. Used
// by flows that build their own request, e.g. the settings logo upload; the
// shared transport keeps the scope guard on this path too.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader, extra map[string]string, out any) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	for k, v := range extra {
		if err := writer.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	resp, err := c.Do(ctx, http.MethodPost, path, nil, buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = data
	}
	resp, err := c.Do(ctx, method, path, nil, payload, "application/json")
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		message := ""
		var env envelope
		if jsonErr := json.Unmarshal(data, &env); jsonErr == nil {
			message = env.Message
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return shared.ErrNotFound
		case http.StatusForbidden:
			return shared.ErrForbidden
		case http.StatusUnauthorized:
			// Session-bound requests never get here, the guard evicts
			// first. Anonymous calls surface plain invalid credentials.
			if message == "" {
				return shared.ErrInvalidCredentials
			}
			return fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, message)
		default:
			if message == "" {
				message = http.StatusText(resp.StatusCode)
			}
			return fmt.Errorf("upstream: %s", message)
		}
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(data, out)
}
