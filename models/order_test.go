package models

import "testing"

func TestCanTransitionForward(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusScheduled, StatusPickedUp, true},
		{StatusPickedUp, StatusProcessing, true},
		{StatusProcessing, StatusQualityCheck, true},
		{StatusQualityCheck, StatusReady, true},
		{StatusReady, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusScheduled, StatusReady, true}, // skipping steps forward is allowed
		{StatusProcessing, StatusPickedUp, false},
		{StatusDelivered, StatusScheduled, false},
		{StatusPickedUp, StatusPickedUp, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCancelledReachableFromNonTerminal(t *testing.T) {
	for _, from := range []string{StatusScheduled, StatusPickedUp, StatusProcessing, StatusQualityCheck, StatusReady, StatusOutForDelivery} {
		if !CanTransition(from, StatusCancelled) {
			t.Errorf("expected %s -> cancelled to be allowed", from)
		}
	}
	if CanTransition(StatusDelivered, StatusCancelled) {
		t.Error("delivered is terminal; cancelled must not be reachable")
	}
	if CanTransition(StatusCancelled, StatusScheduled) {
		t.Error("cancelled is terminal")
	}
}

func TestIsCancellable(t *testing.T) {
	for _, status := range []string{StatusScheduled, StatusPickedUp, StatusProcessing, StatusQualityCheck, StatusReady} {
		if !IsCancellable(status) {
			t.Errorf("expected %s to be cancellable", status)
		}
	}
	for _, status := range []string{StatusDelivered, StatusCancelled, StatusOutForDelivery} {
		if IsCancellable(status) {
			t.Errorf("expected %s to reject cancellation", status)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	if !IsValidStatus(StatusCancelled) || !IsValidStatus(StatusQualityCheck) {
		t.Error("known statuses must validate")
	}
	if IsValidStatus("in_transit") {
		t.Error("unknown status must not validate")
	}
}
