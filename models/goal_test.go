package models

import "testing"

func TestGoalProgressPct(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		want    float64
	}{
		{"halfway", 500, 1000, 50},
		{"complete", 1000, 1000, 100},
		{"overfunded caps at 100", 1500, 1000, 100},
		{"zero target", 500, 0, 0},
		{"negative target", 500, -100, 0},
		{"untouched", 0, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{CurrentAmount: tt.current, TargetAmount: tt.target}
			if got := g.ProgressPct(); got != tt.want {
				t.Errorf("ProgressPct() = %v, want %v", got, tt.want)
			}
		})
	}
}
