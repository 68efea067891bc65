// Package module wires the seller flow into the API using modkit
package module

import (
	"paysplit/internal/core/descriptor"
	modkit "paysplit/internal/modkit"
	"paysplit/internal/modkit/httpkit"

	sellerhttp "paysplit/internal/services/api/seller/http"
	sellersvc "paysplit/internal/services/api/seller/service"
)

// Module implements the seller module
type Module struct {
	modkit.Base

	deps  modkit.Deps
	svc   sellersvc.Service
	ports Ports
}

// New constructs the seller module; options come from deps.Cfg unless given with modkit.WithOptions
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.Build("seller", "/seller", opts...), deps: deps}

	o, ok := m.Options().(Options)
	if !ok {
		o = FromConfig(deps.Cfg)
	}
	svc := sellersvc.New(sellersvc.Options{
		Rate:          o.Rate,
		Budget:        descriptor.Budget{MaxTotalLength: o.MaxTotalLength, MaxImageLength: o.MaxImageLength},
		MaxImageBytes: o.MaxImageBytes,
		QRSize:        o.QRSize,
		Metrics:       deps.Metrics,
	})
	m.svc = svc
	m.ports = Ports{Service: svc, Config: svc}

	m.Handle(func(r httpkit.Router) { sellerhttp.Register(r, m.svc) })
	return m
}
