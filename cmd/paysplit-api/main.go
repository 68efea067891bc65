// @title         paysplit API
// @version       0.1.0
// @description   Price split quotes, payment descriptors and buyer side scanning

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"paysplit/internal/core/version"
	"paysplit/internal/modkit/httpkit"
	"paysplit/internal/platform/config"
	"paysplit/internal/platform/logger"
	"paysplit/internal/platform/metrics"
	phttp "paysplit/internal/platform/net/http"

	"paysplit/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	opts := logger.FromEnv()
	opts.Service = version.ServiceName
	logger.Init(opts)
	l := logger.Get()

	met := metrics.New(apiCfg.MayString("METRICS_NAMESPACE", metrics.DefaultNamespace))
	metricsOn := apiCfg.MayBool("METRICS", true)

	// root level middleware must be installed before any route
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(httpkit.EdgeStack(apiCfg.MayString("HEALTH_PATH", "/health"))...)
		if metricsOn {
			m.Use(met.Middleware)
		}
	})

	r := srv.Router()
	if metricsOn {
		r.Handle("/metrics", met.Handler())
	}

	api.Mount(r, api.Options{
		Config:         root,
		Logger:         l,
		Metrics:        met,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := version.Info()
	l.Info().Str("version", info.Version).Str("addr", srv.Addr()).Msg("starting paysplit api")

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("paysplit api stopped")
}
