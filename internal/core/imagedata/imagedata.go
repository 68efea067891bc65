// Package imagedata turns uploaded product images into data URLs for the descriptor
package imagedata

import (
	"encoding/base64"
	"io"
	"strings"

	perr "paysplit/internal/platform/errors"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the largest raw image accepted (500 KB)
const DefaultMaxBytes = 500 * 1024

// FromBytes sniffs raw, checks the size gate and returns a base64 data URL
// the size gate is applied before sniffing so oversized uploads are never inspected
func FromBytes(raw []byte, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(raw) == 0 {
		return "", perr.WithField(perr.InvalidInputf("image file is empty"), "image")
	}
	if len(raw) > maxBytes {
		return "", perr.WithField(perr.ImageTooLargef(
			"image file is too large (max %dKB), please choose a smaller image", maxBytes/1024), "image")
	}

	mime, ok := imageType(raw)
	if !ok {
		return "", perr.WithField(perr.InvalidInputf("file is not an image (%s)", mime), "image")
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// FromReader reads at most maxBytes+1 bytes from r and delegates to FromBytes
func FromReader(r io.Reader, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r, int64(maxBytes)+1))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeInvalidInput, "failed to read image file")
	}
	return FromBytes(raw, maxBytes)
}

// MediaType returns the media type declared by a data URL, or "" when s is not one
func MediaType(s string) string {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return ""
	}
	head, _, ok := strings.Cut(rest, ",")
	if !ok {
		return ""
	}
	head, _, _ = strings.Cut(head, ";")
	return head
}

func imageType(raw []byte) (string, bool) {
	mt := mimetype.Detect(raw)
	base, _, _ := strings.Cut(mt.String(), ";")
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return base, true
		}
	}
	return base, false
}
