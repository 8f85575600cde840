package store

import (
	"testing"
	"time"
)

func TestParseTime_AcceptsServiceFormats(t *testing.T) {
	tests := []struct {
		name  string
		value string
		zero  bool
	}{
		{"rfc3339", "2026-08-30T09:30:00Z", false},
		{"rfc3339 nano", "2026-08-30T09:30:00.123456789Z", false},
		{"microseconds without zone", "2026-08-30T09:30:00.123456", false},
		{"empty", "", true},
		{"garbage", "yesterday", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTime(tt.value)
			if got.IsZero() != tt.zero {
				t.Fatalf("parseTime(%q) = %v, want zero=%v", tt.value, got, tt.zero)
			}
			if !tt.zero {
				want := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
				if !got.Truncate(time.Second).Equal(want) {
					t.Fatalf("parseTime(%q) = %v, want %v", tt.value, got, want)
				}
			}
		})
	}
}

func TestCustomerName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}
	for _, tt := range tests {
		inv := Invoice{FirstName: tt.first, LastName: tt.last}
		if got := inv.CustomerName(); got != tt.want {
			t.Errorf("CustomerName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}
