package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"paysplit/internal/core/scan"
	perr "paysplit/internal/platform/errors"
	"paysplit/internal/platform/metrics"
	"paysplit/internal/services/api/buyer/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const payload = `{"productImageBase64":null,"totalPriceUSD":19.99,"usdtAmountUSD":9.99,"ivyAmountUSD":10}`

func TestDecode_DefaultsToOneUnit(t *testing.T) {
	m := metrics.New("t")
	s := New(domain.ScanOptions{}, m)

	out, err := s.Decode(context.Background(), domain.DecodeInput{Payload: payload})
	require.NoError(t, err)
	require.Equal(t, 1, out.Totals.Quantity)
	require.Equal(t, "19.99", out.Totals.Total.String())

	q := 7
	out, err = s.Decode(context.Background(), domain.DecodeInput{Payload: payload, Quantity: &q})
	require.NoError(t, err)
	require.Equal(t, "139.93", out.Totals.Total.String())
	require.Equal(t, "69.93", out.Totals.Stable.String())
	require.Equal(t, "70", out.Totals.Remainder.String())

	_, err = s.Decode(context.Background(), domain.DecodeInput{Payload: "{}"})
	require.True(t, perr.IsCode(err, perr.ErrorCodeSchemaViolation))

	require.Equal(t, 2.0, testutil.ToFloat64(m.PayloadsDecoded.WithLabelValues(metrics.OutcomeOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.PayloadsDecoded.WithLabelValues(metrics.OutcomeFailure)))
}

func TestNew_FillsDefaults(t *testing.T) {
	o := New(domain.ScanOptions{PingInterval: time.Second}, nil).ScanOptions()
	require.Equal(t, scan.DefaultConfig(), o.Capture)
	require.Equal(t, time.Second, o.PingInterval)
	require.Equal(t, DefaultScanOptions().AckTimeout, o.AckTimeout)

	custom := scan.Config{FPS: 5, BoxWidth: 300, BoxHeight: 300, AspectRatio: 1, FacingMode: "user"}
	require.Equal(t, custom, New(domain.ScanOptions{Capture: custom}, nil).ScanOptions().Capture)
}

// stubCapture acquires synchronously and hands back handlers
type stubCapture struct {
	h   scan.Handlers
	err error
}

func (c *stubCapture) Start(_ context.Context, _ scan.Config, h scan.Handlers) error {
	c.h = h
	return c.err
}

func (c *stubCapture) Stop() error { return nil }

func TestNewSession_TracksOutcomes(t *testing.T) {
	m := metrics.New("t")
	s := New(domain.ScanOptions{}, m)

	var changes []scan.State
	var frames int
	c := &stubCapture{}
	sess := s.NewSession(c, scan.Observer{
		OnChange: func(sn scan.Snapshot) { changes = append(changes, sn.State) },
		OnFrame:  func(error) { frames++ },
	})
	require.Equal(t, scan.DefaultConfig(), sess.Config())

	require.NoError(t, sess.Start(context.Background()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ScanSessionsActive))
	c.h.OnText("garbage")
	c.h.OnText(payload)
	require.Equal(t, scan.StateSuccess, sess.State())
	require.Equal(t, 0.0, testutil.ToFloat64(m.ScanSessionsActive))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ScanSessionsTotal.WithLabelValues(metrics.OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ScanFrames.WithLabelValues(metrics.OutcomeFailure)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ScanFrames.WithLabelValues(metrics.OutcomeSuccess)))
	require.Equal(t, 2, frames)

	require.NoError(t, sess.Start(context.Background()))
	sess.Stop()
	require.Equal(t, 1.0, testutil.ToFloat64(m.ScanSessionsTotal.WithLabelValues(metrics.OutcomeStopped)))

	c.err = errors.New("no camera")
	require.Error(t, sess.Start(context.Background()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ScanSessionsTotal.WithLabelValues(metrics.OutcomeFailure)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.ScanSessionsActive))

	require.Equal(t, []scan.State{
		scan.StateScanning, scan.StateSuccess,
		scan.StateScanning, scan.StateIdle,
		scan.StateScanning, scan.StateFailure,
	}, changes)
}
