package domain

import (
	"context"

	"paysplit/internal/core/scan"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Decode(ctx context.Context, in DecodeInput) (DecodeOutput, error)
	// NewSession builds a scan session over c with the configured capture settings
	NewSession(c scan.Capture, obs scan.Observer) *scan.Session
	ScanOptions() ScanOptions
}
