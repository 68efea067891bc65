package descriptor

import (
	"fmt"

	perr "paysplit/internal/platform/errors"
)

// Default budgets sized for a level L QR code
const (
	DefaultMaxTotalLength = 2800
	DefaultMaxImageLength = 1800
)

// Budget bounds the encoded payload, lengths are in characters
// MaxImageLength is advisory only; MaxTotalLength is enforced
type Budget struct {
	MaxTotalLength int
	MaxImageLength int
}

// DefaultBudget returns the budgets used by the seller flow
func DefaultBudget() Budget {
	return Budget{MaxTotalLength: DefaultMaxTotalLength, MaxImageLength: DefaultMaxImageLength}
}

// WarningKind classifies non-fatal encoder advisories
type WarningKind string

// Warning kinds
const (
	WarningImageOverSoftLimit WarningKind = "image_over_soft_limit"
	WarningImageOmitted       WarningKind = "image_omitted"
)

// Warning is an advisory the caller must surface to the user
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// Payload is the text embedded in the QR code
// ImageOmitted is set when the image was dropped to fit the budget
type Payload struct {
	Text         string    `json:"payload"`
	Length       int       `json:"length"`
	ImageOmitted bool      `json:"imageOmittedForSizeBudget"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// Encoder serialises descriptors under a size budget
// it holds no mutable state and is safe for concurrent use
type Encoder struct {
	budget Budget
}

// NewEncoder returns an encoder; non-positive budget values fall back to the defaults
func NewEncoder(b Budget) *Encoder {
	def := DefaultBudget()
	if b.MaxTotalLength <= 0 {
		b.MaxTotalLength = def.MaxTotalLength
	}
	if b.MaxImageLength <= 0 {
		b.MaxImageLength = def.MaxImageLength
	}
	return &Encoder{budget: b}
}

// Budget returns the budget in effect
func (e *Encoder) Budget() Budget { return e.budget }

// Encode validates d and serialises it, dropping the image when the full form is over budget
func (e *Encoder) Encode(d Descriptor) (Payload, error) {
	if err := d.Validate(); err != nil {
		return Payload{}, perr.WithOp(err, "descriptor.Encode")
	}

	var out Payload
	if d.HasImage() {
		if n := Length(d.ImageData); n > e.budget.MaxImageLength {
			out.Warnings = append(out.Warnings, Warning{
				Kind: WarningImageOverSoftLimit,
				Message: fmt.Sprintf(
					"Image data is large (%.1fKB). This may affect QR code scannability or prevent generation if total data is too large.",
					float64(n)/1024,
				),
			})
		}
	}

	text, err := Marshal(d)
	if err != nil {
		return Payload{}, err
	}
	if Length(text) <= e.budget.MaxTotalLength {
		out.Text, out.Length = text, Length(text)
		return out, nil
	}

	if !d.HasImage() {
		return Payload{}, perr.WithOp(perr.PayloadTooLargef(
			"product data is too large for QR code (%d chars). Max %d chars",
			Length(text), e.budget.MaxTotalLength,
		), "descriptor.Encode")
	}

	text, err = Marshal(d.WithoutImage())
	if err != nil {
		return Payload{}, err
	}
	if n := Length(text); n > e.budget.MaxTotalLength {
		return Payload{}, perr.WithOp(perr.PayloadTooLargef(
			"product data is too large for QR code even without image (%d chars). Max %d chars",
			n, e.budget.MaxTotalLength,
		), "descriptor.Encode")
	}

	out.Text, out.Length = text, Length(text)
	out.ImageOmitted = true
	out.Warnings = append(out.Warnings, Warning{
		Kind: WarningImageOmitted,
		Message: fmt.Sprintf(
			"Image was too large and has been removed for QR encoding (total data %d chars). The image will still be shown for reference.",
			out.Length,
		),
	})
	return out, nil
}
