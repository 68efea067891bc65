// Package module defines the module contract and port lookups used while composing the API
package module

import (
	phttp "paysplit/internal/platform/net/http"
)

// Module mounts routes and exposes a port set other modules may consume
// it lives apart from modkit so a module can export its own ports type without an import cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
