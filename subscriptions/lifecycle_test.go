package subscriptions

import (
	"testing"
	"time"
)

func TestPauseExtensionDays(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"one exact day", 24 * time.Hour, 1},
		{"partial day rounds up", 25 * time.Hour, 2},
		{"one hour rounds up to a day", time.Hour, 1},
		{"week", 7 * 24 * time.Hour, 7},
		{"zero", 0, 0},
		{"negative clamps to zero", -time.Hour, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PauseExtensionDays(base, base.Add(tt.elapsed)); got != tt.want {
				t.Errorf("expected %d days, got %d", tt.want, got)
			}
		})
	}
}

func TestNewPeriod(t *testing.T) {
	start := time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC)
	period := NewPeriod(start)

	if !period.StartDate.Equal(start) {
		t.Errorf("unexpected start date %v", period.StartDate)
	}
	want := time.Date(2026, 2, 15, 8, 30, 0, 0, time.UTC)
	if !period.EndDate.Equal(want) {
		t.Errorf("expected end date %v, got %v", want, period.EndDate)
	}
	if !period.NextRenewalDate.Equal(period.EndDate) {
		t.Error("next renewal should coincide with period end")
	}
}
