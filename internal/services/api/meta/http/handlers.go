// Package http serves build and effective configuration info
package http

import (
	"net/http"
	"time"

	"paysplit/internal/core/scan"
	"paysplit/internal/core/version"
	"paysplit/internal/modkit/httpkit"
	sellerdom "paysplit/internal/services/api/seller/domain"
)

// Deps are the handler dependencies; Pricing and Scan are optional
type Deps struct {
	StartedAt time.Time
	Pricing   sellerdom.ConfigPort
	Scan      func() scan.Config
	// Now is overridable in tests
	Now func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	httpkit.Get(r, "/version", d.version)
	httpkit.Get(r, "/config", d.config)
}

// VersionResponse is the build stamp plus process uptime
type VersionResponse struct {
	version.BuildInfo
	Started       string `json:"started"       example:"2026-10-01T13:00:00Z"`
	UptimeSeconds int64  `json:"uptimeSeconds" example:"300"`
}

// ConfigResponse is the effective client facing configuration; sections without a port are omitted
type ConfigResponse struct {
	Pricing *sellerdom.PricingConfig `json:"pricing,omitempty"`
	Scan    *scan.Config             `json:"scan,omitempty"`
}

// @Summary Build info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} VersionResponse "ok"
// @Router /meta/version [get]
func (d Deps) version(_ *http.Request) (any, error) {
	return VersionResponse{
		BuildInfo:     version.Info(),
		Started:       d.StartedAt.UTC().Format(time.RFC3339),
		UptimeSeconds: int64(d.Now().Sub(d.StartedAt) / time.Second),
	}, nil
}

// @Summary Effective pricing, payload budget and scanner configuration
// @Tags Meta
// @Produce json
// @Success 200 {object} ConfigResponse "ok"
// @Router /meta/config [get]
func (d Deps) config(_ *http.Request) (any, error) {
	var out ConfigResponse
	if d.Pricing != nil {
		p := d.Pricing.PricingConfig()
		out.Pricing = &p
	}
	if d.Scan != nil {
		s := d.Scan()
		out.Scan = &s
	}
	return out, nil
}
