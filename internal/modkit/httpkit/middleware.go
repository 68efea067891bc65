package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"paysplit/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack; zero values fall back to defaults
type StackOptions struct {
	AllowedOrigins []string
	SlowRequest    time.Duration
	Timeout        time.Duration
}

// CommonStack returns a baseline per module middleware slice
// health checks live on the root router since this stack is mounted under a prefix
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 500 * time.Millisecond
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}

	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestLogContext,

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.AllowedOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// EdgeStack runs on the root router ahead of any mounted module
func EdgeStack(healthPath string) []func(http.Handler) http.Handler {
	if healthPath == "" {
		healthPath = "/health"
	}
	return []func(http.Handler) http.Handler{
		middleware.RealIP(),
		middleware.Heartbeat(healthPath),
	}
}
