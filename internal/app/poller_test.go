package app

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	base := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, maxBackoff},
		{"many failures capped", 10, maxBackoff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, base)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, base, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_NeverExceedsCap(t *testing.T) {
	base := 30 * time.Second
	for failures := 0; failures <= 20; failures++ {
		if got := calculateBackoff(failures, base); got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds cap %v", failures, base, got, maxBackoff)
		}
	}
}
