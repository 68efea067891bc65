// Package metrics provides Prometheus metrics for the pricing and scanning pipeline
package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name
const DefaultNamespace = "paysplit"

// Outcome labels
const (
	OutcomeOK           = "ok"
	OutcomeImageOmitted = "image_omitted"
	OutcomeSuccess      = "success"
	OutcomeFailure      = "failure"
	OutcomeStopped      = "stopped"
)

// Metrics holds every collector the service exports
// a nil *Metrics is valid and records nothing
type Metrics struct {
	reg *prometheus.Registry

	// Pricing
	QuotesTotal *prometheus.CounterVec

	// Payloads
	PayloadsEncoded *prometheus.CounterVec
	PayloadLength   prometheus.Histogram
	PayloadsDecoded *prometheus.CounterVec

	// Scanning
	ScanSessionsActive prometheus.Gauge
	ScanSessionsTotal  *prometheus.CounterVec
	ScanFrames         *prometheus.CounterVec

	// HTTP
	RequestDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,

		QuotesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricing",
			Name:      "quotes_total",
			Help:      "Total number of price splits computed, by whether the stable portion was clamped",
		}, []string{"adjusted"}),

		PayloadsEncoded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payload",
			Name:      "encoded_total",
			Help:      "Total number of encode attempts by outcome",
		}, []string{"outcome"}),
		PayloadLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "payload",
			Name:      "length_chars",
			Help:      "Length of encoded payloads in characters",
			Buckets:   []float64{100, 250, 500, 1000, 1500, 2000, 2400, 2800},
		}),
		PayloadsDecoded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payload",
			Name:      "decoded_total",
			Help:      "Total number of decode attempts by outcome",
		}, []string{"outcome"}),

		ScanSessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "sessions_active",
			Help:      "Number of scan sessions currently scanning",
		}),
		ScanSessionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "sessions_total",
			Help:      "Total number of finished scan attempts by outcome",
		}, []string{"outcome"}),
		ScanFrames: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "frames_total",
			Help:      "Total number of scanned frames by decode outcome",
		}, []string{"outcome"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Registry exposes the underlying registry, mostly for tests
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler returns an HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// RecordQuote counts a computed split
func (m *Metrics) RecordQuote(adjusted bool) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(strconv.FormatBool(adjusted)).Inc()
}

// RecordEncode counts an encode attempt; length is ignored unless outcome is a success
func (m *Metrics) RecordEncode(outcome string, length int) {
	if m == nil {
		return
	}
	m.PayloadsEncoded.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK || outcome == OutcomeImageOmitted {
		m.PayloadLength.Observe(float64(length))
	}
}

// RecordDecode counts a decode attempt
func (m *Metrics) RecordDecode(outcome string) {
	if m == nil {
		return
	}
	m.PayloadsDecoded.WithLabelValues(outcome).Inc()
}

// RecordFrame counts a scanned frame
func (m *Metrics) RecordFrame(outcome string) {
	if m == nil {
		return
	}
	m.ScanFrames.WithLabelValues(outcome).Inc()
}

// ScanStarted marks a session as scanning
func (m *Metrics) ScanStarted() {
	if m == nil {
		return
	}
	m.ScanSessionsActive.Inc()
}

// ScanFinished marks a session as no longer scanning
func (m *Metrics) ScanFinished(outcome string) {
	if m == nil {
		return
	}
	m.ScanSessionsActive.Dec()
	m.ScanSessionsTotal.WithLabelValues(outcome).Inc()
}

// Middleware records request latency labelled by the chi route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.RequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack hands the connection to a websocket upgrader and records the switch
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(w.ResponseWriter).Hijack()
	if err == nil {
		w.status = http.StatusSwitchingProtocols
	}
	return conn, rw, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
