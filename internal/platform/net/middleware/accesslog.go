package middleware

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"paysplit/internal/platform/logger"
	pnet "paysplit/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// AccessLogOptions configures AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take at least this long; 0 disables
	Slow time.Duration
}

// recorder tracks what a handler wrote
type recorder struct {
	http.ResponseWriter
	status   int
	bytes    int
	upgraded bool
}

func (rw *recorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Hijack lets the scan websocket upgrade through the logger
func (rw *recorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, brw, err := http.NewResponseController(rw.ResponseWriter).Hijack()
	if err == nil {
		rw.upgraded = true
		rw.status = http.StatusSwitchingProtocols
	}
	return conn, brw, err
}

// Unwrap exposes the inner writer to http.ResponseController
func (rw *recorder) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

// RequestLogContext copies the request and session ids onto the context for logger.C
// mount after RequestID
func RequestLogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if id := pnet.RequestID(ctx); id != "" {
			r = r.WithContext(logger.WithRequest(ctx, id, pnet.SessionID(ctx)))
		}
		next.ServeHTTP(w, r)
	})
}

// AccessLogZerolog writes one line per request through logger.C
func AccessLogZerolog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rw, r)
			elapsed := time.Since(start)

			log := logger.C(r.Context())
			evt := log.Info()
			// websocket sessions are long lived by nature
			if opt.Slow > 0 && elapsed >= opt.Slow && !rw.upgraded {
				evt = log.Warn()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Int("bytes", rw.bytes).
				Dur("elapsed", elapsed).
				Bool("upgraded", rw.upgraded).
				Msg("request done")
		})
	}
}
