// Package split derives the remainder token portion of a price quote
// The stable portion is capped at half of the total; anything above the cap is
// clamped and reported as an adjustment rather than an error
package split

import (
	"regexp"
	"strings"

	perr "paysplit/internal/platform/errors"

	"github.com/shopspring/decimal"
)

var (
	// Epsilon absorbs rounding noise on every comparison against the 50% boundary
	Epsilon = decimal.RequireFromString("0.001")

	// DefaultRate is USD per remainder token
	DefaultRate = decimal.RequireFromString("0.5")

	half = decimal.RequireFromString("0.5")

	// digits with at most one decimal point, the same filter the seller form applies to keystrokes
	amountText = regexp.MustCompile(`^\d*\.?\d*$`)
)

// Advisories surfaced to the user when a split was adjusted
const (
	AdvisoryClamped = "Stable amount cannot exceed 50% of total price. Adjusted automatically."
	AdvisoryNoTotal = "Please set a valid total price first."
)

// nativePrecision is the number of decimal places kept when converting to token units
const nativePrecision = 16

// Split is an immutable price split in USD plus the remainder in native token units
type Split struct {
	Total           decimal.Decimal `json:"totalPriceUSD"`
	Stable          decimal.Decimal `json:"usdtAmountUSD"`
	RemainderUSD    decimal.Decimal `json:"ivyAmountUSD"`
	RemainderNative decimal.Decimal `json:"ivyAmountNative"`
	Rate            decimal.Decimal `json:"exchangeRate"`
	Adjusted        bool            `json:"adjusted"`
	Advisory        string          `json:"advisory,omitempty"`
}

// Compute splits total into a stable and a remainder portion at the given rate
// stable above half of total is clamped to exactly half and flagged Adjusted
func Compute(total, stable, rate decimal.Decimal) (Split, error) {
	if total.IsNegative() {
		return Split{}, perr.WithField(perr.InvalidInputf("total price must not be negative"), "totalPriceUSD")
	}
	if stable.IsNegative() {
		return Split{}, perr.WithField(perr.InvalidInputf("stable amount must not be negative"), "usdtAmountUSD")
	}
	if !rate.IsPositive() {
		return Split{}, perr.WithField(perr.InvalidInputf("exchange rate must be positive"), "exchangeRate")
	}

	s := Split{Total: total, Stable: stable, Rate: rate}

	limit := Limit(total)
	if stable.GreaterThan(limit) {
		s.Stable = limit
		s.Adjusted = true
		s.Advisory = AdvisoryClamped
		if total.IsZero() {
			s.Advisory = AdvisoryNoTotal
		}
	}

	s.RemainderUSD = total.Sub(s.Stable)
	s.RemainderNative = s.RemainderUSD.DivRound(rate, nativePrecision)
	return s, nil
}

// Parse is Compute over raw form text
// blank or non-numeric text is rejected as InvalidInput
func Parse(totalText, stableText string, rate decimal.Decimal) (Split, error) {
	total, err := ParseAmount(totalText)
	if err != nil {
		return Split{}, perr.WithField(err, "totalPriceUSD")
	}
	stable, err := ParseAmount(stableText)
	if err != nil {
		return Split{}, perr.WithField(err, "usdtAmountUSD")
	}
	return Compute(total, stable, rate)
}

// ParseAmount parses an unsigned decimal amount such as "100", "40.5" or ".5"
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || !amountText.MatchString(s) {
		return decimal.Zero, perr.InvalidInputf("amount %q is not a non-negative number", s)
	}
	// the form accepts "5." and ".5" while typing
	s = strings.TrimSuffix(s, ".")
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, perr.Wrapf(err, perr.ErrorCodeInvalidInput, "amount %q is not a number", s)
	}
	return d, nil
}

// Limit is the largest stable portion allowed for total
func Limit(total decimal.Decimal) decimal.Decimal { return total.Mul(half) }

// WithinLimit reports whether stable respects the cap, tolerating Epsilon
func WithinLimit(total, stable decimal.Decimal) bool {
	return stable.LessThanOrEqual(Limit(total).Add(Epsilon))
}

// Usable reports whether the split can be turned into a payment descriptor
// a zero total is a valid in-progress form state but never usable
func (s Split) Usable() error {
	switch {
	case !s.Total.IsPositive():
		return perr.WithField(perr.InvalidInputf("Please enter a valid total price."), "totalPriceUSD")
	case s.Stable.IsNegative():
		return perr.WithField(perr.InvalidInputf("Please enter a valid stable amount."), "usdtAmountUSD")
	case !WithinLimit(s.Total, s.Stable):
		return perr.WithField(perr.InvalidInputf("Stable amount cannot exceed 50%% of total price."), "usdtAmountUSD")
	case s.RemainderUSD.IsNegative():
		return perr.InvalidInputf("Calculation error. Remainder amount is negative.")
	case s.RemainderUSD.LessThan(Limit(s.Total).Sub(Epsilon)):
		return perr.InvalidInputf("Remainder amount (USD) must be at least 50%% of total price. Please adjust the stable amount.")
	}
	return nil
}
