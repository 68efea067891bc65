// Package module wires the buyer flow into the API using modkit
package module

import (
	modkit "paysplit/internal/modkit"
	"paysplit/internal/modkit/httpkit"

	"paysplit/internal/services/api/buyer/domain"
	buyerhttp "paysplit/internal/services/api/buyer/http"
	buyersvc "paysplit/internal/services/api/buyer/service"
)

// Module implements the buyer module
type Module struct {
	modkit.Base

	deps modkit.Deps
	svc  buyersvc.Service
}

// New constructs the buyer module; scan options come from deps.Cfg unless given with modkit.WithOptions
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	m := &Module{Base: modkit.Build("buyer", "/buyer", opts...), deps: deps}

	o, ok := m.Options().(domain.ScanOptions)
	if !ok {
		o = FromConfig(deps.Cfg)
	}
	m.svc = buyersvc.New(o, deps.Metrics)

	m.Handle(func(r httpkit.Router) { buyerhttp.Register(r, m.svc) })
	return m
}

// Ports exposes the buyer service to sibling modules
func (m *Module) Ports() any { return domain.ServicePort(m.svc) }
