package session

import (
	"context"
	"net"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// hostLimiter rate-limits per hostname so one crawl can't hammer a host
// while another part of the process talks to a different one. Hosts are
// normalized before lookup so the search endpoint and the job-view pages
// share one bucket however their URLs are written.
type hostLimiter struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
	r  rate.Limit
	b  int
}

func newHostLimiter(reqPerSec float64, burst int) *hostLimiter {
	return &hostLimiter{
		m: make(map[string]*rate.Limiter),
		r: rate.Limit(reqPerSec),
		b: burst,
	}
}

// limiterKey maps a URL onto its rate bucket: lowercased host, port and
// "www." prefix dropped. Unparseable input lands in a catch-all bucket so
// it is still throttled.
func limiterKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "_"
	}
	host := strings.ToLower(u.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.TrimPrefix(host, "www.")
}

func (hl *hostLimiter) limiterFor(key string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()

	if lim, ok := hl.m[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.r, hl.b)
	hl.m[key] = lim
	return lim
}

func (hl *hostLimiter) waitURL(ctx context.Context, raw string) error {
	return hl.limiterFor(limiterKey(raw)).Wait(ctx)
}
