package modkit

import (
	"net/http"

	phttp "paysplit/internal/platform/net/http"
)

// Option mutates build configuration for a module
type Option func(*buildCfg)

type buildCfg struct {
	name    string
	prefix  string
	mw      []func(http.Handler) http.Handler
	ports   any
	options any
	routes  []func(phttp.Router)
}

// WithName sets a module name used in logs and the port registry
func WithName(name string) Option {
	return func(c *buildCfg) { c.name = name }
}

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option {
	return func(c *buildCfg) { c.prefix = prefix }
}

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts injects ports owned by another module
// the concrete type is declared by the receiving module
func WithPorts[T any](p T) Option {
	return func(c *buildCfg) { c.ports = p }
}

// WithOptions hands a module its typed options, bypassing the env lookup
func WithOptions[T any](o T) Option {
	return func(c *buildCfg) { c.options = o }
}

// WithRoutes adds endpoints mounted after the module's own, under the same prefix and middleware
func WithRoutes(fn func(phttp.Router)) Option {
	return func(c *buildCfg) {
		if fn != nil {
			c.routes = append(c.routes, fn)
		}
	}
}
