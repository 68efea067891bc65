// Package service contains seller workflows: split preview, payload generation, QR rendering and image intake
package service

import (
	"context"
	"io"
	"strings"

	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/imagedata"
	"paysplit/internal/core/normalize"
	"paysplit/internal/core/qrcode"
	"paysplit/internal/core/split"
	perr "paysplit/internal/platform/errors"
	"paysplit/internal/platform/logger"
	"paysplit/internal/platform/metrics"
	"paysplit/internal/services/api/seller/domain"

	"github.com/shopspring/decimal"
)

// Service defines the seller service contract
type Service interface {
	domain.ServicePort
	domain.ConfigPort
}

// Options configures a seller service; zero values fall back to defaults
type Options struct {
	Rate          decimal.Decimal
	Budget        descriptor.Budget
	MaxImageBytes int
	QRSize        int
	Metrics       *metrics.Metrics
}

// Svc implements the seller service
type Svc struct {
	rate     decimal.Decimal
	enc      *descriptor.Encoder
	maxImage int
	qrSize   int
	metrics  *metrics.Metrics
}

// New constructs a seller service
func New(o Options) *Svc {
	if !o.Rate.IsPositive() {
		o.Rate = split.DefaultRate
	}
	if o.MaxImageBytes <= 0 {
		o.MaxImageBytes = imagedata.DefaultMaxBytes
	}
	if o.QRSize <= 0 {
		o.QRSize = qrcode.DefaultSize
	}
	return &Svc{
		rate:     o.Rate,
		enc:      descriptor.NewEncoder(o.Budget),
		maxImage: o.MaxImageBytes,
		qrSize:   o.QRSize,
		metrics:  o.Metrics,
	}
}

// PricingConfig returns the effective configuration
func (s *Svc) PricingConfig() domain.PricingConfig {
	b := s.enc.Budget()
	return domain.PricingConfig{
		ExchangeRate:      s.rate,
		MaxTotalLength:    b.MaxTotalLength,
		MaxImageLength:    b.MaxImageLength,
		MaxImageFileBytes: s.maxImage,
		QRSize:            s.qrSize,
	}
}

// Quote previews a split while the form is being filled in
// a blank stable amount counts as zero so the remainder tracks the total as the user types
func (s *Svc) Quote(ctx context.Context, in domain.QuoteInput) (split.Split, error) {
	stable := in.Stable
	if strings.TrimSpace(stable) == "" {
		stable = "0"
	}
	out, err := split.Parse(in.Total, stable, s.rate)
	if err != nil {
		return split.Split{}, err
	}
	s.metrics.RecordQuote(out.Adjusted)
	if out.Adjusted {
		logger.C(ctx).Debug().
			Str("total", out.Total.String()).
			Str("stable", out.Stable.String()).
			Msg("stable amount clamped to half of total")
	}
	return out, nil
}

// Generate validates the form and encodes the payment payload under the size budget
func (s *Svc) Generate(ctx context.Context, in domain.GenerateInput) (domain.GenerateOutput, error) {
	sp, err := split.Parse(in.Total, in.Stable, s.rate)
	if err != nil {
		return domain.GenerateOutput{}, err
	}
	if err := sp.Usable(); err != nil {
		return domain.GenerateOutput{}, err
	}
	if sp.Adjusted {
		// generation never silently rewrites the seller's amounts
		return domain.GenerateOutput{}, perr.WithField(
			perr.InvalidInputf("Stable amount cannot exceed 50%% of total price."), "usdtAmountUSD")
	}

	name := normalize.Label(in.ProductName)
	d := descriptor.FromSplit(sp, name, in.ProductImage)

	p, err := s.enc.Encode(d)
	if err != nil {
		s.metrics.RecordEncode(metrics.OutcomeFailure, 0)
		return domain.GenerateOutput{}, err
	}

	log := logger.C(ctx)
	for _, w := range p.Warnings {
		log.Warn().Str("kind", string(w.Kind)).Int("length", p.Length).Msg(w.Message)
	}
	outcome := metrics.OutcomeOK
	if p.ImageOmitted {
		outcome = metrics.OutcomeImageOmitted
	}
	s.metrics.RecordEncode(outcome, p.Length)

	return domain.GenerateOutput{
		Payload: p,
		Display: domain.DisplayFor(sp, name, in.ProductImage),
	}, nil
}

// QR renders payload text as a PNG
func (s *Svc) QR(_ context.Context, in domain.QRInput) ([]byte, error) {
	size := in.Size
	if size <= 0 {
		size = s.qrSize
	}
	return qrcode.Render(in.Payload, size)
}

// Image accepts an uploaded product image and returns its data URL
func (s *Svc) Image(ctx context.Context, r io.Reader) (domain.ImageOutput, error) {
	data, err := imagedata.FromReader(r, s.maxImage)
	if err != nil {
		logger.C(ctx).Info().Err(err).Msg("product image rejected")
		return domain.ImageOutput{}, err
	}
	return domain.ImageOutput{
		ProductImage: data,
		MediaType:    imagedata.MediaType(data),
		Length:       len(data),
	}, nil
}
