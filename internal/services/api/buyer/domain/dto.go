// Package domain holds DTOs for buyer http and service contracts
package domain

import (
	"time"

	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/scan"
)

// DecodeInput is scanned payload text; Quantity defaults to 1 when omitted
type DecodeInput struct {
	Payload  string `json:"payload" validate:"required" example:"{\"productImageBase64\":null,\"totalPriceUSD\":100,\"usdtAmountUSD\":40,\"ivyAmountUSD\":60}"`
	Quantity *int   `json:"quantity,omitempty" example:"2"`
}

// DecodeOutput is the decoded descriptor plus totals for the chosen quantity
type DecodeOutput struct {
	Descriptor descriptor.Descriptor `json:"descriptor"`
	Totals     descriptor.Totals     `json:"totals"`
}

// ScanOptions tunes live scan sessions
type ScanOptions struct {
	Capture        scan.Config
	AckTimeout     time.Duration // how long the client has to confirm the camera started
	PingInterval   time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string // empty means same origin only
}
