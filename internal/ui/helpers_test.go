package ui

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"14.85", "$14.85"},
		{"3.5", "$3.50"},
		{"1234.567", "$1234.57"},
	}
	for _, tt := range tests {
		if got := formatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("formatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exact fit", 9, "exact fit"},
		{"much too long for this", 10, "much to..."},
		{"tiny", 2, "ti"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
		}
	}
}

func TestThemeCycle(t *testing.T) {
	seen := map[string]bool{}
	name := "Dracula"
	for i := 0; i < 3; i++ {
		if seen[name] {
			t.Fatalf("theme %q repeated before the cycle completed", name)
		}
		seen[name] = true
		name = NextTheme(name)
	}
	if name != "Dracula" {
		t.Fatalf("cycle did not return to the start: got %q", name)
	}
}

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	theme := GetTheme("no-such-theme")
	if theme.Name != "Dracula" {
		t.Fatalf("GetTheme fallback = %q, want Dracula", theme.Name)
	}
}
