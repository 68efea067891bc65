// Package modkit provides module wiring and core deps
package modkit

import (
	"paysplit/internal/platform/config"
	"paysplit/internal/platform/logger"
	"paysplit/internal/platform/metrics"
)

// Deps holds core dependencies passed to modules
// every field is usable at its zero value; a nil Metrics records nothing
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Metrics *metrics.Metrics
}
