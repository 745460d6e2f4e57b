package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/AnaFlavia-corretora/pcd/pkg/errors"
	"github.com/AnaFlavia-corretora/pcd/pkg/httputil"
)

// client is one tracked caller: its token bucket and when it last made
// a request.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiters hands out one token bucket per caller address and evicts
// buckets idle longer than ttl, so the map does not grow with every
// address that ever hit the service.
type ipLimiters struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     int
	burst   int
	ttl     time.Duration
	clock   func() time.Time
}

func newIPLimiters(rps, burst int, ttl time.Duration) *ipLimiters {
	p := &ipLimiters{
		clients: make(map[string]*client),
		rps:     rps,
		burst:   burst,
		ttl:     ttl,
		clock:   time.Now,
	}
	go p.evictLoop()
	return p
}

// limiterFor returns the bucket for ip, creating it on first sight, and
// marks the client as recently seen.
func (p *ipLimiters) limiterFor(ip string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(p.rps), p.burst)}
		p.clients[ip] = c
	}
	c.lastSeen = p.clock()
	return c.limiter
}

func (p *ipLimiters) evictLoop() {
	ticker := time.NewTicker(p.ttl)
	defer ticker.Stop()
	for range ticker.C {
		p.evictStale()
	}
}

func (p *ipLimiters) evictStale() {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.clock().Add(-p.ttl)
	for ip, c := range p.clients {
		if c.lastSeen.Before(cutoff) {
			delete(p.clients, ip)
		}
	}
}

// RateLimit caps each caller address at rps requests per second with
// the given burst allowance. Requests over the limit get a 429 with the
// standard error envelope.
func RateLimit(rps, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	const idleTTL = 3 * time.Minute
	pool := newIPLimiters(rps, burst, idleTTL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !pool.limiterFor(ip).Allow() {
				logger.Warn("request rate limited",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)
				httputil.WriteError(w, r, &apperrors.AppError{
					Code:    "RATE_LIMITED",
					Message: "too many requests",
					Status:  http.StatusTooManyRequests,
				}, logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP picks the address a request is limited under. Forwarding
// headers are honored here, unlike the pprof allowlist, because limits
// must apply to the real caller when the service sits behind a proxy.
// The first parseable X-Forwarded-For entry wins, then X-Real-IP, then
// the socket address.
func clientIP(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(r.Header.Get("X-Real-IP")); ip != nil {
		return ip.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
