package version

import (
	"runtime"
	"testing"
)

func TestInfo_Defaults(t *testing.T) {
	got := Info()
	want := BuildInfo{Service: "paysplit-api", Version: "dev", Commit: "none", Date: "unknown", GoVersion: runtime.Version()}
	if got != want {
		t.Fatalf("Info() = %+v want %+v", got, want)
	}
}

func TestInfo_LinkerOverrides(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })

	version, commit, date = "v1.2.3", "abc123", "2026-10-01"
	got := Info()
	if got.Version != "v1.2.3" || got.Commit != "abc123" || got.Date != "2026-10-01" {
		t.Fatalf("overrides not reflected: %+v", got)
	}
}
