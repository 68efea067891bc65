// Package config reads typed settings from environment variables
//
// Conf is a namespaced view; Prefix("CORE_API_") scopes a module. May* accessors fall back to the
// default on a missing value and warn on an unparseable one. MayEnum is strict and panics.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"paysplit/internal/platform/logger"

	"github.com/shopspring/decimal"
)

// Conf is a namespaced view over environment variables
type Conf struct{ prefix string }

// New returns a root Conf without a prefix
func New() Conf { return Conf{} }

// Prefix returns a child Conf, e.g. cfg.Prefix("PRICING_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.Key(key))) }

// parsed returns def for a blank value and def plus a warning for a bad one
func parsed[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Named("config").Warn().Err(err).
			Str("key", c.Key(key)).
			Str("value", s).
			Interface("default", def).
			Msg("invalid value; using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns an int or def
func (c Conf) MayInt(key string, def int) int { return parsed(c, key, def, strconv.Atoi) }

// MayFloat64 returns a float or def; money goes through MayDecimal instead
func (c Conf) MayFloat64(key string, def float64) float64 {
	return parsed(c, key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayDecimal returns an exact decimal or def
func (c Conf) MayDecimal(key string, def decimal.Decimal) decimal.Decimal {
	return parsed(c, key, def, decimal.NewFromString)
}

// MayBool returns a bool (strconv.ParseBool forms) or def
func (c Conf) MayBool(key string, def bool) bool { return parsed(c, key, def, strconv.ParseBool) }

// MayDuration returns a duration such as 250ms or 2s, or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parsed(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value if it is one of allowed (case-insensitive), def when blank
// an unknown value panics, a typo in a mode switch should stop the process
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Named("config").Panic().
		Str("key", c.Key(key)).
		Str("value", v).
		Strs("allowed", allowed).
		Msg("invalid enum value")
	return ""
}
