// Package api provides the HTTP API for the application
package api

import (
	"paysplit/internal/platform/config"
	"paysplit/internal/platform/logger"
	"paysplit/internal/platform/metrics"
	phttp "paysplit/internal/platform/net/http"

	"paysplit/internal/modkit"
	"paysplit/internal/modkit/httpkit"
	"paysplit/internal/modkit/module"
	"paysplit/internal/modkit/swaggerkit"

	buyerdom "paysplit/internal/services/api/buyer/domain"
	buyermod "paysplit/internal/services/api/buyer/module"
	metamod "paysplit/internal/services/api/meta/module"
	sellerdom "paysplit/internal/services/api/seller/domain"
	sellermod "paysplit/internal/services/api/seller/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Metrics        *metrics.Metrics
	EnableSwagger  bool
	EnableProfiler bool
	// AllowedOrigins feeds CORS for the versioned API; empty allows any origin
	AllowedOrigins []string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	seller := sellermod.New(deps)
	buyer := buyermod.New(deps)

	// meta reports the live pricing and scanner config of its siblings
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Pricing: module.MustPortsOf[sellerdom.ConfigPort](seller),
		Buyer:   module.MustPortsOf[buyerdom.ServicePort](buyer),
	}))

	mods := []module.Module{meta, seller, buyer}

	stack := httpkit.CommonStack(httpkit.StackOptions{AllowedOrigins: opt.AllowedOrigins})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
