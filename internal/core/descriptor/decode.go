package descriptor

import (
	"encoding/json"
	"strings"

	perr "paysplit/internal/platform/errors"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
)

// payloadSchema is the structural contract a scanned payload must meet
// there is deliberately no cross field check of the 50% rule here
const payloadSchema = `{
  "type": "object",
  "required": ["totalPriceUSD", "usdtAmountUSD", "ivyAmountUSD"],
  "properties": {
    "productImageBase64": {"type": ["string", "null"]},
    "productName": {"type": ["string", "null"]},
    "totalPriceUSD": {"type": "number", "minimum": 0},
    "usdtAmountUSD": {"type": "number", "minimum": 0},
    "ivyAmountUSD": {"type": "number", "minimum": 0}
  }
}`

var schema = jsonschema.MustCompileString("payload.schema.json", payloadSchema)

// Bounds on any number in a payload; both keep plain notation rendering short
const (
	MaxIntegerDigits = 15
	MaxScale         = 18
)

// Decode parses payload text into a descriptor
// unparseable text is MalformedPayload; parseable text with missing or mistyped fields is SchemaViolation
// numbers beyond MaxIntegerDigits or MaxScale are SchemaViolation and never reach the validator
func Decode(text string) (d Descriptor, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = Descriptor{}, perr.SchemaViolationf("payload could not be validated: %v", r)
		}
	}()

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Descriptor{}, perr.Wrap(err, perr.ErrorCodeMalformedPayload, "payload is not valid JSON")
	}
	if dec.More() {
		return Descriptor{}, perr.MalformedPayloadf("payload has trailing data")
	}

	if err := checkNumbers(doc, "value"); err != nil {
		return Descriptor{}, err
	}
	if err := schema.Validate(doc); err != nil {
		return Descriptor{}, perr.Wrap(err, perr.ErrorCodeSchemaViolation, "payload does not match the descriptor schema")
	}

	// schema guarantees an object with the three numbers present
	obj := doc.(map[string]any)

	if d.Total, err = amount(obj, KeyTotal); err != nil {
		return Descriptor{}, err
	}
	if d.Stable, err = amount(obj, KeyStable); err != nil {
		return Descriptor{}, err
	}
	if d.Remainder, err = amount(obj, KeyRemainder); err != nil {
		return Descriptor{}, err
	}
	d.ImageData, _ = obj[KeyImage].(string)
	d.ProductName, _ = obj[KeyName].(string)
	return d, nil
}

func amount(obj map[string]any, key string) (decimal.Decimal, error) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return decimal.Zero, perr.WithField(perr.SchemaViolationf("%s must be a number", key), key)
	}
	v, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, perr.WithField(
			perr.Wrapf(err, perr.ErrorCodeSchemaViolation, "%s is not a finite number", key), key)
	}
	return v, nil
}

// checkNumbers walks doc and rejects the first number no amount could need
func checkNumbers(v any, key string) error {
	switch t := v.(type) {
	case json.Number:
		return boundedNumber(t, key)
	case map[string]any:
		for k, e := range t {
			if err := checkNumbers(e, k); err != nil {
				return err
			}
		}
	case []any:
		for _, e := range t {
			if err := checkNumbers(e, key); err != nil {
				return err
			}
		}
	}
	return nil
}

// boundedNumber looks at digits and exponent only, so 1e10000000 is never expanded
func boundedNumber(n json.Number, key string) error {
	v, err := decimal.NewFromString(n.String())
	if err != nil {
		return perr.WithField(perr.Wrapf(err, perr.ErrorCodeSchemaViolation, "%s is not a finite number", key), key)
	}
	if v.IsZero() {
		return nil
	}
	exp := int(v.Exponent())
	if v.NumDigits()+exp > MaxIntegerDigits || -exp > MaxScale {
		return perr.WithField(perr.SchemaViolationf("%s %s is out of range", key, abbreviate(n.String())), key)
	}
	return nil
}

func abbreviate(s string) string {
	if len(s) <= 32 {
		return s
	}
	return s[:32] + "..."
}
