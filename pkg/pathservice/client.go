// Package pathservice is a client for the remote campus route service. The
// service owns the campus graph and the shortest-path computation; this
// package only speaks its two-endpoint contract:
//
//	GET /getNames                       -> []campus.Building
//	GET /findPath?start=<s>&end=<e>     -> campus.Route
package pathservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"campus_paths/pkg/campus"
)

var (
	// ErrUnavailable is returned when the service cannot be reached or
	// answers with a non-2xx status.
	ErrUnavailable = errors.New("route service unavailable")
	// ErrBadResponse is returned when the service answers with a body that
	// cannot be decoded.
	ErrBadResponse = errors.New("route service returned an invalid response")
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// Service is the capability contract of the remote route service.
type Service interface {
	Buildings(ctx context.Context) ([]campus.Building, error)
	FindPath(ctx context.Context, start, end string) (*campus.Route, error)
}

// Config configures a Client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	CacheSize int           // 0 disables the route cache
	CacheTTL  time.Duration // 0 means cached routes never expire
}

// DefaultConfig returns sensible defaults for the given base URL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		Timeout:   10 * time.Second,
		CacheSize: 1024,
		CacheTTL:  time.Hour,
	}
}

// Client implements Service over HTTP.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	routes     gcache.Cache
}

// NewClient validates the configuration and builds a client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", cfg.BaseURL)
	}

	c := &Client{
		base:       base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.CacheSize > 0 {
		b := gcache.New(cfg.CacheSize).LRU()
		if cfg.CacheTTL > 0 {
			b = b.Expiration(cfg.CacheTTL)
		}
		c.routes = b.Build()
	}
	return c, nil
}

// BaseURL returns the service address the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Buildings fetches the list of selectable buildings in service order.
func (c *Client) Buildings(ctx context.Context) ([]campus.Building, error) {
	var bldgs []campus.Building
	if err := c.getJSON(ctx, "/getNames", nil, &bldgs); err != nil {
		return nil, err
	}
	if bldgs == nil {
		bldgs = []campus.Building{}
	}
	return bldgs, nil
}

// FindPath fetches the shortest route between two buildings identified by
// short name. The returned route is owned by the caller.
func (c *Client) FindPath(ctx context.Context, start, end string) (*campus.Route, error) {
	key := start + "\x00" + end
	if c.routes != nil {
		if v, err := c.routes.Get(key); err == nil {
			return v.(*campus.Route).Clone(), nil
		}
	}

	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)

	var route campus.Route
	if err := c.getJSON(ctx, "/findPath", q, &route); err != nil {
		return nil, err
	}
	if len(route.Path) == 0 {
		return nil, fmt.Errorf("%w: empty path from %s to %s", ErrBadResponse, start, end)
	}

	if c.routes != nil {
		_ = c.routes.Set(key, route.Clone())
	}
	return &route, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if q != nil {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: HTTP %d: %s", ErrUnavailable, path, resp.StatusCode, truncate(string(data), 200))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrBadResponse, path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
