// Package normalize canonicalises free-text product labels before they are embedded in a payload
// Pipeline order
// 1 drop invalid UTF-8, NUL, C0 and C1 controls
// 2 Unicode NFKC normalization (folds fullwidth forms)
// 3 remove format characters (ZWJ, ZWNJ, BOM and friends)
// 4 collapse whitespace runs to a single space and trim
// 5 cap the label length in runes
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLabelRunes bounds product names so a label alone cannot eat the payload budget
const MaxLabelRunes = 120

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Label returns the canonical form of a product name
func Label(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	ns = collapseSpaces(ns)
	return truncate(ns, MaxLabelRunes)
}

// Sanitize drops invalid UTF-8 and control runes, keeping ordinary whitespace
// Fast path returns s unchanged when nothing needs cleaning
func Sanitize(s string) string {
	clean := true
	for i, r := range s {
		if isControl(r) || (r == utf8.RuneError && !validAt(s, i)) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if r == utf8.RuneError && !validAt(s, i) {
			continue
		}
		if isControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isControl reports C0 (except tab and line breaks), DEL and C1 controls
func isControl(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// validAt distinguishes a literal U+FFFD from a decoding error at byte offset i
func validAt(s string, i int) bool {
	_, size := utf8.DecodeRuneInString(s[i:])
	return size == 3
}

// collapseSpaces turns every whitespace run, line breaks included, into one ASCII space
func collapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max]))
}
