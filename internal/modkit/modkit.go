package modkit

import "paysplit/internal/modkit/module"

// Module is the surface the API composes: routes plus a port set for cross wiring
type Module = module.Module
