// Package qrcode renders descriptor payloads as QR codes
package qrcode

import (
	"strings"

	perr "paysplit/internal/platform/errors"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the rendered edge length in pixels
const DefaultSize = 200

// Level is the error correction level; Low maximises capacity for the payload budget
const Level = qr.Low

// Render encodes payload as a size x size PNG
func Render(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	q, err := build(payload)
	if err != nil {
		return nil, err
	}
	png, err := q.PNG(size)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "failed to render QR code")
	}
	return png, nil
}

// Text renders payload as terminal block characters, two modules per row of output
func Text(payload string) (string, error) {
	q, err := build(payload)
	if err != nil {
		return "", err
	}
	bits := q.Bitmap()

	var b strings.Builder
	for y := 0; y < len(bits); y += 2 {
		for x := range bits[y] {
			top := bits[y][x]
			bottom := y+1 < len(bits) && bits[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func build(payload string) (*qr.QRCode, error) {
	if payload == "" {
		return nil, perr.WithField(perr.InvalidInputf("payload is empty"), "payload")
	}
	q, err := qr.New(payload, Level)
	if err != nil {
		return nil, perr.WithField(
			perr.Wrap(err, perr.ErrorCodePayloadTooLarge, "payload does not fit in a QR code"), "payload")
	}
	return q, nil
}
