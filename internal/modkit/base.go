package modkit

import (
	"net/http"

	"paysplit/internal/modkit/httpkit"
	str "paysplit/internal/platform/strings"
)

// Base carries the routing identity every module shares; embed it and call Handle
type Base struct {
	name    string
	prefix  string
	mw      []func(http.Handler) http.Handler
	ports   any
	options any
	own     func(httpkit.Router)
	extra   []func(httpkit.Router)
}

// Build applies defaults then opts, later options winning
func Build(name, prefix string, opts ...Option) Base {
	c := buildCfg{name: name, prefix: prefix}
	for _, o := range opts {
		o(&c)
	}
	return Base{
		name:    c.name,
		prefix:  c.prefix,
		mw:      append([]func(http.Handler) http.Handler(nil), c.mw...),
		ports:   c.ports,
		options: c.options,
		extra:   c.routes,
	}
}

// Handle sets the function that registers the module's own endpoints
func (b *Base) Handle(fn func(httpkit.Router)) { b.own = fn }

// Injected returns whatever WithPorts supplied, or nil
func (b *Base) Injected() any { return b.ports }

// Options returns whatever WithOptions supplied, or nil
func (b *Base) Options() any { return b.options }

// Name returns the module name and panics when unset
func (b *Base) Name() string { return str.MustString(b.name, "module name") }

// Prefix returns the normalised route prefix
func (b *Base) Prefix() string { return str.MustPrefix(b.prefix) }

// Middlewares returns the per module middleware
func (b *Base) Middlewares() []func(http.Handler) http.Handler { return b.mw }

// MountRoutes mounts own then extra endpoints under Prefix
func (b *Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.Prefix(), b.mw, func(sub httpkit.Router) {
		if b.own != nil {
			b.own(sub)
		}
		for _, fn := range b.extra {
			fn(sub)
		}
	})
}
