// Package session is the HTTP transport layer for the crawler: plain GETs
// with rotating proxies, per-host rate limiting, and no cookie persistence.
// Callers see status, body, and the post-redirect URL; nothing else.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

type Config struct {
	Timeout      time.Duration // per-request; 10s when zero
	UserAgent    string
	Headers      map[string]string
	Proxies      []string // rotated round-robin; empty means direct
	ReqPerSecond float64  // per-host limit; 0 disables
	LimiterBurst int
	MaxBodyBytes int64 // cap on response body reads; 0 means 8 MiB
}

// Response is the opaque result the crawler consumes.
type Response struct {
	StatusCode int
	Body       []byte
	FinalURL   string // URL after redirects; used for auth-gate detection
}

// OK reports a 2xx or 3xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

type Client struct {
	hc      *http.Client
	headers map[string]string
	ua      string
	limiter *hostLimiter
	maxBody int64
	log     zerolog.Logger

	mu      sync.Mutex
	proxies []*url.URL
	next    int
}

func New(cfg Config, log zerolog.Logger) (*Client, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody == 0 {
		maxBody = 8 << 20
	}

	c := &Client{
		headers: cfg.Headers,
		ua:      ua,
		maxBody: maxBody,
		log:     log.With().Str("component", "session").Logger(),
	}

	for _, p := range cfg.Proxies {
		u, err := url.Parse(normalizeProxy(p))
		if err != nil {
			return nil, fmt.Errorf("bad proxy %q: %w", p, err)
		}
		c.proxies = append(c.proxies, u)
	}

	if cfg.ReqPerSecond > 0 {
		burst := cfg.LimiterBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = newHostLimiter(cfg.ReqPerSecond, burst)
	}

	// No cookie jar on purpose: every request starts cookie-free, which is
	// the "clear cookies per request" contract.
	c.hc = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: c.nextProxy,
		},
	}
	return c, nil
}

func normalizeProxy(p string) string {
	for _, scheme := range []string{"http://", "https://", "socks5://"} {
		if len(p) >= len(scheme) && p[:len(scheme)] == scheme {
			return p
		}
	}
	return "http://" + p
}

func (c *Client) nextProxy(*http.Request) (*url.URL, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.proxies) == 0 {
		return nil, nil
	}
	u := c.proxies[c.next%len(c.proxies)]
	c.next++
	return u, nil
}

// Get issues one GET with the configured headers and rate limit. Query
// params are merged into the URL. Redirects are followed; the final URL is
// reported on the response.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.waitURL(ctx, rawURL); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		q := req.URL.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}

	c.log.Debug().
		Str("url", req.URL.String()).
		Int("status", res.StatusCode).
		Int("bytes", len(body)).
		Msg("get")

	return &Response{
		StatusCode: res.StatusCode,
		Body:       body,
		FinalURL:   res.Request.URL.String(),
	}, nil
}
