package luci

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/micro-ha/cudy-monitor/internal/model"
)

const (
	loginTimeout = 10 * time.Second
	dataTimeout  = 30 * time.Second

	// One original attempt plus one retry after re-authentication.
	maxAttempts = 2
)

// Client talks to the LuCI web interface of a Cudy router. Credentials are
// fixed for the lifetime of the client; the session cookie is acquired
// lazily and refreshed when the router reports it stale.
//
// All access happens from the single sequential poll flow, so the session
// needs no locking.
type Client struct {
	httpClient *http.Client
	cfg        model.RouterConfig
	logger     *slog.Logger
	session    *Session
}

func NewClient(cfg model.RouterConfig, logger *slog.Logger) *Client {
	return NewClientWithHTTPClient(cfg, nil, logger)
}

func NewClientWithHTTPClient(cfg model.RouterConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: dataTimeout}
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = dataTimeout
	}
	// The router answers logins and form submissions with redirects whose
	// targets require the fresh cookie; following them loses the Set-Cookie
	// header.
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: httpClient, cfg: cfg, logger: logger}
}

// Get fetches a LuCI page and returns its body, or an empty string on any
// unrecoverable failure. A 403 triggers exactly one re-authentication and
// retry; everything else is absorbed.
func (c *Client) Get(ctx context.Context, path string) string {
	pageURL := c.cfg.BaseURL() + "/cgi-bin/luci/" + strings.TrimPrefix(path, "/")

	for attempt := 0; attempt < maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return ""
		}
		if cookie := c.cookieHeader(ctx, false); cookie != "" {
			req.Header.Set("Cookie", cookie)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("luci get failed", "path", path, "err", err)
			continue
		}

		if resp.StatusCode == http.StatusForbidden {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if !c.Authenticate(ctx) {
				return ""
			}
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return ""
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return ""
		}
		return string(body)
	}
	return ""
}

// Post submits a form to a LuCI endpoint. The router answers successful
// submissions with a redirect, so 3xx counts as success.
func (c *Client) Post(ctx context.Context, path string, form url.Values) bool {
	postURL := c.cfg.BaseURL() + "/cgi-bin/luci/" + strings.TrimPrefix(path, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie := c.cookieHeader(ctx, false); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("luci post failed", "path", path, "err", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

func (c *Client) cookieHeader(ctx context.Context, force bool) string {
	if !force && c.session.Valid() {
		return "sysauth=" + c.session.Token
	}
	if c.Authenticate(ctx) {
		return "sysauth=" + c.session.Token
	}
	return ""
}
