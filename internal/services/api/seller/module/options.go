package module

import (
	"paysplit/internal/core/descriptor"
	"paysplit/internal/core/imagedata"
	"paysplit/internal/core/qrcode"
	"paysplit/internal/core/split"
	"paysplit/internal/platform/config"

	"github.com/shopspring/decimal"
)

// Options controls pricing and payload budgets
type Options struct {
	Rate           decimal.Decimal // USD per remainder token
	MaxTotalLength int
	MaxImageLength int
	MaxImageBytes  int
	QRSize         int
}

// FromConfig reads PRICING_* and PAYLOAD_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("PRICING_")
	bc := cfg.Prefix("PAYLOAD_")
	return Options{
		Rate:           pc.MayDecimal("EXCHANGE_RATE", split.DefaultRate),
		MaxTotalLength: bc.MayInt("MAX_TOTAL_LENGTH", descriptor.DefaultMaxTotalLength),
		MaxImageLength: bc.MayInt("MAX_IMAGE_LENGTH", descriptor.DefaultMaxImageLength),
		MaxImageBytes:  bc.MayInt("MAX_IMAGE_FILE_BYTES", imagedata.DefaultMaxBytes),
		QRSize:         bc.MayInt("QR_SIZE", qrcode.DefaultSize),
	}
}
