package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLabel_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "empty", in: "", out: ""},
		{name: "identity ascii", in: "Coffee Beans", out: "Coffee Beans"},
		{name: "invalid utf8 dropped", in: string([]byte{0xff, 'T', 'e', 'a', 0x80}), out: "Tea"},
		{name: "controls dropped", in: "Te\x00a\x7f\u0085", out: "Tea"},
		{name: "zero widths dropped", in: "Ca\u200bke\ufeff", out: "Cake"},
		{name: "combining accent composed", in: "cafe\u0301", out: "caf\u00e9"},
		{name: "fullwidth folded", in: "\uff21\uff22\uff23", out: "ABC"},
		{name: "whitespace collapsed", in: "  big \t\n  mug  ", out: "big mug"},
		{name: "literal replacement char kept", in: "a\ufffdb", out: "a\ufffdb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.in); got != tt.out {
				t.Fatalf("Label(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestLabel_Truncates(t *testing.T) {
	in := strings.Repeat("é", MaxLabelRunes+10)
	got := Label(in)
	if n := utf8.RuneCountInString(got); n != MaxLabelRunes {
		t.Fatalf("rune count = %d, want %d", n, MaxLabelRunes)
	}
}

func TestLabel_Idempotent(t *testing.T) {
	for _, in := range []string{"  \uff34\uff45\uff41\u200b pot ", "cafe\u0301 au lait", "plain"} {
		once := Label(in)
		if twice := Label(once); twice != once {
			t.Fatalf("Label not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestSanitize_FastPath(t *testing.T) {
	s := "nothing to clean\n"
	if got := Sanitize(s); got != s {
		t.Fatalf("Sanitize changed clean input: %q", got)
	}
}
