package courtlistener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
	"github.com/Travis-Prall/court-listener-mcp/internal/credentials"
	"github.com/Travis-Prall/court-listener-mcp/internal/httpclient"
	"github.com/Travis-Prall/court-listener-mcp/pkg/logging"
	pkgstrings "github.com/Travis-Prall/court-listener-mcp/pkg/strings"
)

// maxErrorBody bounds how much of a failed response body is read.
const maxErrorBody = 64 * 1024

// userAgent is sent with every request.
const userAgent = "court-listener-mcp"

// Client calls the CourtListener REST API. It holds no connection state of
// its own: every request borrows a client from the Provider and resolves the
// credential afresh.
type Client struct {
	baseURL  *url.URL
	provider *httpclient.Provider
	creds    credentials.Source
}

// NewClient creates a Client for the API rooted at baseURL, which must be an
// absolute URL ending in "/".
func NewClient(baseURL string, provider *httpclient.Provider, creds credentials.Source) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base URL %q is not absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Client{baseURL: u, provider: provider, creds: creds}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get fetches path relative to the API root and decodes the JSON response.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	target := c.resolve(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, api.Wrap(api.KindInternal, err, "cannot build request for %s", path)
	}
	return c.do(ctx, req, path)
}

// PostForm submits form to path and decodes the JSON response.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (any, error) {
	target := c.resolve(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, api.Wrap(api.KindInternal, err, "cannot build request for %s", path)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out any
	if err := c.send(ctx, req, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, req *http.Request, path string) (map[string]any, error) {
	var out map[string]any
	if err := c.send(ctx, req, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, req *http.Request, path string, out any) error {
	headers, err := credentials.BuildAuthHeaders(c.creds)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	lease := c.provider.Acquire(ctx)
	defer lease.Release()

	start := time.Now()
	resp, err := lease.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			logging.Warn("HTTPClient", "Request to %s timed out after %s", path, time.Since(start).Round(time.Millisecond))
			return api.NewRemoteTimeoutError(path, err)
		}
		logging.Warn("HTTPClient", "Request to %s failed: %v", path, err)
		return api.NewRemoteUnavailableError(path, 0, "", err)
	}
	defer resp.Body.Close()

	logging.Debug("HTTPClient", "%s %s -> %d in %s", req.Method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := pkgstrings.SingleLine(string(body), pkgstrings.DefaultDetailMaxLen)
		return api.NewRemoteUnavailableError(path, resp.StatusCode, detail, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if isTimeout(ctx, err) {
			return api.NewRemoteTimeoutError(path, err)
		}
		return api.NewRemoteUnavailableError(path, resp.StatusCode, "response is not valid JSON", err)
	}
	return nil
}

// resolve joins path onto the API root. Leading slashes are ignored so that
// the root's own path prefix is kept.
func (c *Client) resolve(path string) *url.URL {
	rel := &url.URL{Path: strings.TrimLeft(path, "/")}
	return c.baseURL.ResolveReference(rel)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
