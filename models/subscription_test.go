package models

import "testing"

func TestCalculateRemaining(t *testing.T) {
	sub := Subscription{
		Plan: VendorPlan{
			WeightQuotaKg:     20,
			PickupQuota:       8,
			QuickServiceQuota: 2,
			AddOnQuota:        4,
		},
		Usage: Usage{
			WeightUsedKg:      7.5,
			PickupsCompleted:  3,
			QuickServicesUsed: 2,
			AddOnsUsed:        1,
		},
	}

	sub.CalculateRemaining()

	if sub.Usage.WeightRemainingKg != 12.5 {
		t.Errorf("expected 12.5 kg remaining, got %v", sub.Usage.WeightRemainingKg)
	}
	if sub.Usage.PickupsRemaining != 5 {
		t.Errorf("expected 5 pickups remaining, got %d", sub.Usage.PickupsRemaining)
	}
	if sub.Usage.QuickServicesRemaining != 0 {
		t.Errorf("expected 0 quick services remaining, got %d", sub.Usage.QuickServicesRemaining)
	}
	if sub.Usage.AddOnsRemaining != 3 {
		t.Errorf("expected 3 add-ons remaining, got %d", sub.Usage.AddOnsRemaining)
	}
}

func TestCalculateRemainingNeverNegative(t *testing.T) {
	sub := Subscription{
		Plan: VendorPlan{WeightQuotaKg: 10, PickupQuota: 4},
		Usage: Usage{
			WeightUsedKg:     25, // overage
			PickupsCompleted: 9,
		},
	}

	sub.CalculateRemaining()

	if sub.Usage.WeightRemainingKg != 0 {
		t.Errorf("remaining weight must clamp at zero, got %v", sub.Usage.WeightRemainingKg)
	}
	if sub.Usage.PickupsRemaining != 0 {
		t.Errorf("remaining pickups must clamp at zero, got %d", sub.Usage.PickupsRemaining)
	}
}
