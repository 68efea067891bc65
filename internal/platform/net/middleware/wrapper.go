// Package middleware adapts chi middleware and adds the request logging and panic envelopes
package middleware

import (
	"net/http"
	"time"

	pstrings "paysplit/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
	"github.com/gorilla/websocket"
)

// Middleware is the standard net/http decorator
type Middleware = func(http.Handler) http.Handler

// RequestID propagates X-Request-Id or mints one onto the context
func RequestID() Middleware { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Forwarded-For / X-Real-IP
func RealIP() Middleware { return chimw.RealIP }

// NoCache disables client and proxy caching, quotes go stale as soon as the rate changes
func NoCache() Middleware { return chimw.NoCache }

// RedirectSlashes redirects /quote/ to /quote
func RedirectSlashes() Middleware { return chimw.RedirectSlashes }

// StripSlashes routes /quote/ as /quote
func StripSlashes() Middleware { return chimw.StripSlashes }

// Heartbeat answers GET path with 200 ahead of routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Compress gzips/deflates responses at level (flate levels)
func Compress(level int) Middleware { return chimw.NewCompressor(level).Handler }

// Timeout cancels the request context after d
// websocket upgrades pass through untouched, a scan session outlives any request deadline
func Timeout(d time.Duration) Middleware {
	timed := chimw.Timeout(d)
	return func(next http.Handler) http.Handler {
		t := timed(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if websocket.IsWebSocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}
			t.ServeHTTP(w, r)
		})
	}
}

// CORSOptions is the subset of go-chi/cors the api exposes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS wraps go-chi/cors; empty method and header lists get the api defaults
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
