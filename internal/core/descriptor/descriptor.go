// Package descriptor encodes price split descriptors into size constrained QR payloads and back
//
// The wire format is a flat JSON object with fixed keys:
//
//	productImageBase64  string or null
//	productName         string, optional
//	totalPriceUSD       number
//	usdtAmountUSD       number (stable portion)
//	ivyAmountUSD        number (remainder portion)
//
// Encoding is deterministic: keys are written in the order above, strings are not HTML escaped and
// numbers are written in plain decimal notation
package descriptor

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"paysplit/internal/core/split"
	perr "paysplit/internal/platform/errors"

	"github.com/shopspring/decimal"
)

// Wire keys shared by the encoder, decoder and schema
const (
	KeyImage     = "productImageBase64"
	KeyName      = "productName"
	KeyTotal     = "totalPriceUSD"
	KeyStable    = "usdtAmountUSD"
	KeyRemainder = "ivyAmountUSD"
)

// Descriptor is the canonical record embedded in a payment QR code
// ImageData is an embeddable text form of the product image, empty when absent
type Descriptor struct {
	ImageData   string          `json:"productImageBase64,omitempty"`
	ProductName string          `json:"productName,omitempty"`
	Total       decimal.Decimal `json:"totalPriceUSD"`
	Stable      decimal.Decimal `json:"usdtAmountUSD"`
	Remainder   decimal.Decimal `json:"ivyAmountUSD"`
}

// FromSplit builds a descriptor from a computed split
func FromSplit(s split.Split, name, image string) Descriptor {
	return Descriptor{
		ImageData:   image,
		ProductName: name,
		Total:       s.Total,
		Stable:      s.Stable,
		Remainder:   s.RemainderUSD,
	}
}

// HasImage reports whether an image is attached
func (d Descriptor) HasImage() bool { return d.ImageData != "" }

// WithoutImage returns a copy with the image cleared
func (d Descriptor) WithoutImage() Descriptor {
	d.ImageData = ""
	return d
}

// Equal compares descriptors by value, amounts compared numerically
func (d Descriptor) Equal(o Descriptor) bool {
	return d.ImageData == o.ImageData &&
		d.ProductName == o.ProductName &&
		d.Total.Equal(o.Total) &&
		d.Stable.Equal(o.Stable) &&
		d.Remainder.Equal(o.Remainder)
}

// Validate checks the price split invariants
// amounts are non-negative, stable plus remainder equals total and stable respects the 50% cap
func (d Descriptor) Validate() error {
	switch {
	case d.Total.IsNegative():
		return perr.WithField(perr.InvalidDescriptorf("total price is negative"), KeyTotal)
	case d.Stable.IsNegative():
		return perr.WithField(perr.InvalidDescriptorf("stable amount is negative"), KeyStable)
	case d.Remainder.IsNegative():
		return perr.WithField(perr.InvalidDescriptorf("remainder amount is negative"), KeyRemainder)
	}
	if diff := d.Stable.Add(d.Remainder).Sub(d.Total).Abs(); diff.GreaterThan(split.Epsilon) {
		return perr.InvalidDescriptorf("stable %s plus remainder %s does not add up to total %s",
			d.Stable, d.Remainder, d.Total)
	}
	if !split.WithinLimit(d.Total, d.Stable) {
		return perr.WithField(
			perr.InvalidDescriptorf("stable amount %s exceeds 50%% of total price %s", d.Stable, d.Total),
			KeyStable,
		)
	}
	return nil
}

// wire is the on-the-wire shape; field order is the canonical key order
type wire struct {
	Image     *string     `json:"productImageBase64"`
	Name      string      `json:"productName,omitempty"`
	Total     json.Number `json:"totalPriceUSD"`
	Stable    json.Number `json:"usdtAmountUSD"`
	Remainder json.Number `json:"ivyAmountUSD"`
}

// Marshal returns the canonical text form of d without any budget checks
func Marshal(d Descriptor) (string, error) {
	w := wire{
		Name:      d.ProductName,
		Total:     json.Number(d.Total.String()),
		Stable:    json.Number(d.Stable.String()),
		Remainder: json.Number(d.Remainder.String()),
	}
	if d.HasImage() {
		img := d.ImageData
		w.Image = &img
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(w); err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidDescriptor, "descriptor is not serialisable")
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Length counts characters the way payload budgets are expressed
func Length(s string) int { return utf8.RuneCountInString(s) }
