package module

import (
	"paysplit/internal/core/scan"
	"paysplit/internal/platform/config"
	"paysplit/internal/services/api/buyer/domain"
	buyersvc "paysplit/internal/services/api/buyer/service"
)

// FromConfig reads SCAN_* values from process config/env
func FromConfig(cfg config.Conf) domain.ScanOptions {
	sc := cfg.Prefix("SCAN_")
	def := buyersvc.DefaultScanOptions()
	box := sc.MayInt("BOX", def.Capture.BoxWidth)
	return domain.ScanOptions{
		Capture: scan.Config{
			FPS:         sc.MayInt("FPS", def.Capture.FPS),
			BoxWidth:    box,
			BoxHeight:   box,
			AspectRatio: sc.MayFloat64("ASPECT_RATIO", def.Capture.AspectRatio),
			FacingMode:  sc.MayEnum("FACING_MODE", def.Capture.FacingMode, "environment", "user"),
		},
		AckTimeout:     sc.MayDuration("ACK_TIMEOUT", def.AckTimeout),
		PingInterval:   sc.MayDuration("PING_INTERVAL", def.PingInterval),
		ReadTimeout:    sc.MayDuration("READ_TIMEOUT", def.ReadTimeout),
		WriteTimeout:   sc.MayDuration("WRITE_TIMEOUT", def.WriteTimeout),
		AllowedOrigins: sc.MayCSV("ALLOWED_ORIGINS", nil),
	}
}
