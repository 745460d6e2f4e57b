package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig controls the cross-origin policy of the HTTP surface.
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API. A "*"
	// entry allows any origin.
	AllowedOrigins []string

	// AllowedMethods defaults to GET and OPTIONS; the catalog is
	// read-only.
	AllowedMethods []string

	// AllowedHeaders defaults to Accept, Content-Type and
	// X-Correlation-ID.
	AllowedHeaders []string

	// ExposedHeaders lists response headers browser scripts may read.
	ExposedHeaders []string

	// MaxAge is how many seconds a preflight answer may be cached.
	// Defaults to 3600.
	MaxAge int

	// AllowCredentials permits cookies and authorization headers on
	// cross-origin calls.
	AllowCredentials bool

	// Environment loosens the policy: "development" behaves as if
	// AllowedOrigins contained "*".
	Environment string
}

// corsPolicy is a CORSConfig flattened into the strings the headers need,
// computed once at mount time.
type corsPolicy struct {
	wildcard    bool
	origins     map[string]struct{}
	methods     string
	headers     string
	exposed     string
	maxAge      string
	credentials bool
}

func newCORSPolicy(cfg CORSConfig) *corsPolicy {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = []string{http.MethodGet, http.MethodOptions}
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = []string{"Accept", "Content-Type", "X-Correlation-ID"}
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 3600
	}

	p := &corsPolicy{
		wildcard:    cfg.Environment == "development",
		origins:     make(map[string]struct{}, len(cfg.AllowedOrigins)),
		methods:     strings.Join(cfg.AllowedMethods, ", "),
		headers:     strings.Join(cfg.AllowedHeaders, ", "),
		exposed:     strings.Join(cfg.ExposedHeaders, ", "),
		maxAge:      strconv.Itoa(cfg.MaxAge),
		credentials: cfg.AllowCredentials,
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			p.wildcard = true
		}
		p.origins[origin] = struct{}{}
	}
	return p
}

// apply writes the policy headers for a request from the given origin.
// Non-wildcard responses always carry Vary: Origin, matched or not, so
// shared caches never serve one origin's answer to another.
func (p *corsPolicy) apply(w http.ResponseWriter, origin string) {
	h := w.Header()

	if p.wildcard {
		h.Set("Access-Control-Allow-Origin", "*")
	} else {
		h.Add("Vary", "Origin")
		if _, ok := p.origins[origin]; ok && origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
		}
	}

	h.Set("Access-Control-Allow-Methods", p.methods)
	h.Set("Access-Control-Allow-Headers", p.headers)
	if p.exposed != "" {
		h.Set("Access-Control-Expose-Headers", p.exposed)
	}
	h.Set("Access-Control-Max-Age", p.maxAge)
	if p.credentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
}

// CORS applies the cross-origin policy to every response and answers
// preflight OPTIONS requests with 204 before they reach the router.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy.apply(w, r.Header.Get("Origin"))

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
