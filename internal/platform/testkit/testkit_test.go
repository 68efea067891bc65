package testkit

import (
	"os"
	"testing"
)

var rate = "0.5"

func TestMustPanic(t *testing.T) {
	if v := MustPanic(t, func() { panic("boom") }); v != "boom" {
		t.Fatalf("recovered %v", v)
	}
	MustPanicWith(t, "not found", func() { panic("port not found") })
}

func TestMustContain(t *testing.T) {
	MustContain(t, "level=info quote computed", "quote")
}

func TestSwap_RestoresAfterSubtest(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &rate, "2")
		if rate != "2" {
			t.Fatalf("swap did not apply, rate=%s", rate)
		}
	})
	if rate != "0.5" {
		t.Fatalf("swap did not restore, rate=%s", rate)
	}
}

func TestEnv(t *testing.T) {
	Env(t, map[string]string{"PAYSPLIT_TESTKIT_A": "1", "PAYSPLIT_TESTKIT_B": "two"})
	if os.Getenv("PAYSPLIT_TESTKIT_A") != "1" || os.Getenv("PAYSPLIT_TESTKIT_B") != "two" {
		t.Fatal("env not set")
	}
}
