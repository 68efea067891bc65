package config

import (
	"reflect"
	"testing"
	"time"

	kit "paysplit/internal/platform/testkit"

	"github.com/shopspring/decimal"
)

func TestPrefixComposes(t *testing.T) {
	c := New().Prefix("CORE_").Prefix("API_")
	if got := c.Key("PORT"); got != "CORE_API_PORT" {
		t.Fatalf("Key = %q", got)
	}
	if got := New().Key("PORT"); got != "PORT" {
		t.Fatalf("root Key = %q", got)
	}
}

func TestMayScalars(t *testing.T) {
	kit.Env(t, map[string]string{
		"T_NAME":  " paysplit ",
		"T_INT":   " 7 ",
		"T_FLOAT": "1.5",
		"T_BOOL":  "true",
		"T_DUR":   "150ms",
		"T_BAD":   "nope",
		"T_BLANK": "   ",
	})
	c := New().Prefix("T_")

	if got := c.MayString("NAME", "x"); got != "paysplit" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayString("BLANK", "def"); got != "def" {
		t.Fatalf("MayString blank = %q", got)
	}
	if c.MayInt("INT", 0) != 7 || c.MayInt("BAD", 3) != 3 || c.MayInt("MISSING", 9) != 9 {
		t.Fatal("MayInt fallbacks")
	}
	if c.MayFloat64("FLOAT", 0) != 1.5 || c.MayFloat64("BAD", 2) != 2 {
		t.Fatal("MayFloat64 fallbacks")
	}
	if !c.MayBool("BOOL", false) || c.MayBool("BAD", false) || !c.MayBool("MISSING", true) {
		t.Fatal("MayBool fallbacks")
	}
	if c.MayDuration("DUR", time.Second) != 150*time.Millisecond || c.MayDuration("BAD", time.Minute) != time.Minute {
		t.Fatal("MayDuration fallbacks")
	}
}

func TestMayDecimal(t *testing.T) {
	kit.Env(t, map[string]string{"PRICING_EXCHANGE_RATE": " 0.125 ", "PRICING_BAD": "half"})
	c := New().Prefix("PRICING_")
	def := decimal.RequireFromString("0.5")

	if got := c.MayDecimal("EXCHANGE_RATE", def); got.String() != "0.125" {
		t.Fatalf("MayDecimal = %s", got)
	}
	for _, key := range []string{"BAD", "MISSING"} {
		if got := c.MayDecimal(key, def); !got.Equal(def) {
			t.Fatalf("MayDecimal(%s) = %s want default", key, got)
		}
	}
}

func TestMayCSV(t *testing.T) {
	kit.Env(t, map[string]string{"CORS_ORIGINS": " https://pos.local, ,https://shop.local ,, ", "CORS_EMPTY": " , , "})
	c := New().Prefix("CORS_")
	def := []string{"*"}

	if got := c.MayCSV("ORIGINS", def); !reflect.DeepEqual(got, []string{"https://pos.local", "https://shop.local"}) {
		t.Fatalf("MayCSV = %#v", got)
	}
	if got := c.MayCSV("EMPTY", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("MayCSV all blank = %#v", got)
	}
	if got := c.MayCSV("MISSING", def); !reflect.DeepEqual(got, def) {
		t.Fatalf("MayCSV missing = %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	kit.Env(t, map[string]string{"SCAN_FACING_MODE": "User", "SCAN_BAD": "sideways"})
	c := New().Prefix("SCAN_")

	if got := c.MayEnum("FACING_MODE", "environment", "environment", "user"); got != "user" {
		t.Fatalf("MayEnum canonical = %q", got)
	}
	if got := c.MayEnum("MISSING", "environment", "environment", "user"); got != "environment" {
		t.Fatalf("MayEnum default = %q", got)
	}
	if got := c.MayEnum("MISSING", "", "environment", "user"); got != "" {
		t.Fatalf("MayEnum empty default = %q", got)
	}
	kit.MustPanicWith(t, "invalid enum value", func() { c.MayEnum("BAD", "environment", "environment", "user") })
}
