package analytics_test

import (
	"testing"

	"alumnihub-be/internal/analytics"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		prior     float64
		want      float64
		undefined bool
	}{
		{name: "both zero", current: 0, prior: 0, want: 0},
		{name: "zero baseline", current: 5, prior: 0, undefined: true},
		{name: "growth", current: 150, prior: 100, want: 50},
		{name: "decline", current: 50, prior: 100, want: -50},
		{name: "drop to zero", current: 0, prior: 40, want: -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.PercentChange(tt.current, tt.prior)
			if tt.undefined {
				if got != nil {
					t.Fatalf("expected undefined, got %v", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %v, got undefined", tt.want)
			}
			if *got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, *got)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	if got := analytics.Round1(33.333333); got != 33.3 {
		t.Fatalf("expected 33.3, got %v", got)
	}
	if got := analytics.Round1(66.66); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
}
