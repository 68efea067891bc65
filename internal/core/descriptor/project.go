package descriptor

import (
	"strconv"
	"strings"

	perr "paysplit/internal/platform/errors"

	"github.com/shopspring/decimal"
)

// Totals are the per-unit amounts scaled by a quantity
type Totals struct {
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"totalPriceUSD"`
	Stable    decimal.Decimal `json:"usdtAmountUSD"`
	Remainder decimal.Decimal `json:"ivyAmountUSD"`
}

// Project multiplies each amount of d by quantity
func Project(d Descriptor, quantity int) (Totals, error) {
	if quantity <= 0 {
		return Totals{}, perr.WithField(perr.InvalidQuantityf("quantity must be a positive integer, got %d", quantity), "quantity")
	}
	q := decimal.NewFromInt(int64(quantity))
	return Totals{
		Quantity:  quantity,
		Total:     d.Total.Mul(q),
		Stable:    d.Stable.Mul(q),
		Remainder: d.Remainder.Mul(q),
	}, nil
}

// ClampQuantity maps a raw quantity keystroke to a usable quantity
// blank input resets to 1, positive integers are taken as is and anything else keeps prev
func ClampQuantity(raw string, prev int) int {
	if prev < 1 {
		prev = 1
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return prev
	}
	return v
}
