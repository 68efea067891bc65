// Package module mounts the meta endpoints under /meta
package module

import (
	"time"

	"paysplit/internal/core/scan"
	modkit "paysplit/internal/modkit"
	"paysplit/internal/modkit/httpkit"

	buyerdom "paysplit/internal/services/api/buyer/domain"
	metahttp "paysplit/internal/services/api/meta/http"
	sellerdom "paysplit/internal/services/api/seller/domain"
)

// Ports are the ports meta reads from other modules; both are optional
type Ports struct {
	Pricing sellerdom.ConfigPort
	Buyer   buyerdom.ServicePort
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base

	deps      modkit.Deps
	startedAt time.Time
}

// New constructs a meta module; sibling ports arrive through modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.Build("meta", "/meta", opts...), deps: deps, startedAt: time.Now()}

	injected, _ := m.Injected().(Ports)
	hd := metahttp.Deps{StartedAt: m.startedAt, Pricing: injected.Pricing}
	if injected.Buyer != nil {
		hd.Scan = func() scan.Config { return injected.Buyer.ScanOptions().Capture }
	}

	m.Handle(func(r httpkit.Router) { metahttp.Register(r, hd) })
	return m
}

// Ports implements the modkit.Module interface; meta exports nothing
func (m *Module) Ports() any { return nil }
