package utils

import (
	"testing"
	"time"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{"9876543210", "6000000000", "7123456789", "8999999999"}
	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Errorf("expected %s to be valid", p)
		}
	}

	invalid := []string{"1234567890", "98765", "98765432109", "abcdefghij", "", "+919876543210"}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Errorf("expected %s to be invalid", p)
		}
	}
}

func TestIsValidPincode(t *testing.T) {
	if !IsValidPincode("110001") {
		t.Error("expected 110001 to be valid")
	}
	for _, p := range []string{"1100", "11000a", "1100011", ""} {
		if IsValidPincode(p) {
			t.Errorf("expected %s to be invalid", p)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{32.9967, 33},
		{10.556, 10.56},
		{0, 0},
		{49.994, 49.99},
	}
	for _, tt := range tests {
		if got := RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2026, 5, 20, 17, 45, 12, 999, time.UTC)
	got := StartOfDay(in)
	want := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
