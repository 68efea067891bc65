// Package version reports what binary is running
package version

import "runtime"

// ServiceName identifies the API process in logs, meta endpoints and metrics
const ServiceName = "paysplit-api"

// set with -ldflags "-X paysplit/internal/core/version.version=v0.3.0 -X ...commit=abcd -X ...date=2026-10-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the build stamp of the running binary
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
}

// Info returns the stamp set at link time
func Info() BuildInfo {
	return BuildInfo{Service: ServiceName, Version: version, Commit: commit, Date: date, GoVersion: runtime.Version()}
}
