package domain

import (
	"context"
	"io"

	"paysplit/internal/core/split"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Quote(ctx context.Context, in QuoteInput) (split.Split, error)
	Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error)
	QR(ctx context.Context, in QRInput) ([]byte, error)
	Image(ctx context.Context, r io.Reader) (ImageOutput, error)
}

// ConfigPort exposes the effective pricing configuration
type ConfigPort interface {
	PricingConfig() PricingConfig
}
