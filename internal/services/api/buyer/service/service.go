// Package service contains buyer workflows: payload decoding, quantity projection and scan sessions
package service

import (
	"context"
	"sync"
	"time"

	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/scan"
	perr "paysplit/internal/platform/errors"
	"paysplit/internal/platform/logger"
	"paysplit/internal/platform/metrics"
	"paysplit/internal/services/api/buyer/domain"
)

// Service defines the buyer service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the buyer service
type Svc struct {
	opts    domain.ScanOptions
	metrics *metrics.Metrics
}

// New constructs a buyer service; zero scan options fall back to defaults
func New(o domain.ScanOptions, m *metrics.Metrics) *Svc {
	def := DefaultScanOptions()
	if o.Capture == (scan.Config{}) {
		o.Capture = def.Capture
	}
	if o.AckTimeout <= 0 {
		o.AckTimeout = def.AckTimeout
	}
	if o.PingInterval <= 0 {
		o.PingInterval = def.PingInterval
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = def.ReadTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = def.WriteTimeout
	}
	return &Svc{opts: o, metrics: m}
}

// DefaultScanOptions returns the browser scanner defaults and conservative socket timeouts
func DefaultScanOptions() domain.ScanOptions {
	return domain.ScanOptions{
		Capture:      scan.DefaultConfig(),
		AckTimeout:   15 * time.Second,
		PingInterval: 30 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// ScanOptions returns the effective scan options
func (s *Svc) ScanOptions() domain.ScanOptions { return s.opts }

// Decode parses payload text and projects it over the requested quantity
func (s *Svc) Decode(ctx context.Context, in domain.DecodeInput) (domain.DecodeOutput, error) {
	q := 1
	if in.Quantity != nil {
		q = *in.Quantity
	}

	d, err := descriptor.Decode(in.Payload)
	if err != nil {
		s.metrics.RecordDecode(metrics.OutcomeFailure)
		logger.C(ctx).Debug().Err(err).Str("code", perr.CodeOf(err).String()).Msg("payload rejected")
		return domain.DecodeOutput{}, err
	}
	s.metrics.RecordDecode(metrics.OutcomeOK)

	t, err := descriptor.Project(d, q)
	if err != nil {
		return domain.DecodeOutput{}, err
	}
	return domain.DecodeOutput{Descriptor: d, Totals: t}, nil
}

// NewSession builds a scan session whose transitions and frames are counted in metrics
func (s *Svc) NewSession(c scan.Capture, obs scan.Observer) *scan.Session {
	tr := &tracker{m: s.metrics, next: obs}
	return scan.New(c,
		scan.WithConfig(s.opts.Capture),
		scan.WithObserver(scan.Observer{OnChange: tr.change, OnFrame: tr.frame}),
	)
}

// tracker maps session transitions onto the scan gauges
type tracker struct {
	m    *metrics.Metrics
	next scan.Observer

	mu   sync.Mutex
	prev scan.State
}

func (t *tracker) change(snap scan.Snapshot) {
	t.mu.Lock()
	prev := t.prev
	t.prev = snap.State
	t.mu.Unlock()

	switch {
	case prev != scan.StateScanning && snap.State == scan.StateScanning:
		t.m.ScanStarted()
	case prev == scan.StateScanning && snap.State == scan.StateSuccess:
		t.m.ScanFinished(metrics.OutcomeSuccess)
	case prev == scan.StateScanning && snap.State == scan.StateFailure:
		t.m.ScanFinished(metrics.OutcomeFailure)
	case prev == scan.StateScanning && snap.State == scan.StateIdle:
		t.m.ScanFinished(metrics.OutcomeStopped)
	}

	if t.next.OnChange != nil {
		t.next.OnChange(snap)
	}
}

func (t *tracker) frame(err error) {
	if err != nil {
		t.m.RecordFrame(metrics.OutcomeFailure)
	} else {
		t.m.RecordFrame(metrics.OutcomeSuccess)
	}
	if t.next.OnFrame != nil {
		t.next.OnFrame(err)
	}
}
