package orders

import (
	"testing"
	"time"

	"tastyaana/models"
)

func testVendor() *models.Vendor {
	return &models.Vendor{
		VendorID: "v1",
		IsActive: true,
		Services: []string{"wash_fold", "dry_clean"},
		Pricing: map[string]map[string]float64{
			"shirt": {"wash_fold": 25, "dry_clean": 80},
			"jeans": {"wash_fold": 40},
		},
		WeightPricing: map[string]float64{
			"wash_fold": 55,
		},
		QuickService:     models.QuickServiceConfig{Enabled: true, MaxTurnaroundHrs: 8},
		ScheduledService: models.ScheduledServiceConfig{TurnaroundHrs: 48},
	}
}

func TestPerPieceItemPrice(t *testing.T) {
	vendor := testVendor()
	items := []models.OrderItem{
		{Type: "shirt", ServiceType: "wash_fold", Quantity: 2, PricingModel: "per_piece"},
	}

	pricing, priced, err := CalculatePricing(items, vendor, "scheduled", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced[0].TotalPrice != 50 {
		t.Errorf("expected item total 50, got %v", priced[0].TotalPrice)
	}
	if pricing.Subtotal != 50 || pricing.Total != 50 {
		t.Errorf("expected subtotal/total 50, got %v/%v", pricing.Subtotal, pricing.Total)
	}
}

func TestWeightBasedItemPrice(t *testing.T) {
	vendor := testVendor()
	items := []models.OrderItem{
		{Type: "mixed", ServiceType: "wash_fold", Quantity: 1, PricingModel: "weight_based", Weight: 3.5},
	}

	_, priced, err := CalculatePricing(items, vendor, "scheduled", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 55/kg × 3.5 kg × 1 = 192.50
	if priced[0].TotalPrice != 192.5 {
		t.Errorf("expected item total 192.5, got %v", priced[0].TotalPrice)
	}
}

func TestWeightBasedRounding(t *testing.T) {
	vendor := testVendor()
	items := []models.OrderItem{
		{Type: "mixed", ServiceType: "wash_fold", Quantity: 1, PricingModel: "weight_based", Weight: 0.33, PricePerKg: 99.99},
	}

	_, priced, err := CalculatePricing(items, vendor, "scheduled", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 99.99 × 0.33 = 32.9967, rounded to cents
	if priced[0].TotalPrice != 33.0 {
		t.Errorf("expected item total 33.0, got %v", priced[0].TotalPrice)
	}
}

func TestPriceSourcePrecedence(t *testing.T) {
	vendor := testVendor()

	tests := []struct {
		name string
		item models.OrderItem
		want float64
	}{
		{
			name: "item override wins over vendor table",
			item: models.OrderItem{Type: "shirt", ServiceType: "wash_fold", Quantity: 1, PricingModel: "per_piece", PricePerItem: 10},
			want: 10,
		},
		{
			name: "vendor table wins over default",
			item: models.OrderItem{Type: "shirt", ServiceType: "dry_clean", Quantity: 1, PricingModel: "per_piece"},
			want: 80,
		},
		{
			name: "default when type unknown to vendor",
			item: models.OrderItem{Type: "scarf", ServiceType: "wash_fold", Quantity: 1, PricingModel: "per_piece"},
			want: defaultPricePerItem,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, priced, err := CalculatePricing([]models.OrderItem{tt.item}, vendor, "scheduled", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if priced[0].TotalPrice != tt.want {
				t.Errorf("expected %v, got %v", tt.want, priced[0].TotalPrice)
			}
		})
	}
}

func TestQuantityClampedInPricing(t *testing.T) {
	vendor := testVendor()
	items := []models.OrderItem{
		{Type: "shirt", ServiceType: "wash_fold", Quantity: 500, PricingModel: "per_piece"},
	}

	_, priced, err := CalculatePricing(items, vendor, "scheduled", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced[0].Quantity != MaxQuantity {
		t.Errorf("expected quantity clamped to %d, got %d", MaxQuantity, priced[0].Quantity)
	}
	if priced[0].TotalPrice != 25*float64(MaxQuantity) {
		t.Errorf("expected total %v, got %v", 25*float64(MaxQuantity), priced[0].TotalPrice)
	}
}

func TestCategoryAutoClassification(t *testing.T) {
	vendor := testVendor()
	items := []models.OrderItem{
		{Type: "bedsheet", ServiceType: "wash_fold", Quantity: 1, PricingModel: "per_piece"},
		{Type: "shirt", ServiceType: "wash_fold", Quantity: 1, PricingModel: "per_piece", Category: "custom"},
	}

	_, priced, err := CalculatePricing(items, vendor, "scheduled", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced[0].Category != "household" {
		t.Errorf("expected bedsheet classified as household, got %q", priced[0].Category)
	}
	if priced[1].Category != "custom" {
		t.Errorf("caller-supplied category must be preserved, got %q", priced[1].Category)
	}
}

func TestExpressFeeAndDiscount(t *testing.T) {
	vendor := testVendor()
	vendor.QuickService.ExpressFee = 30
	sub := &models.Subscription{Plan: models.VendorPlan{DiscountPercent: 10}}

	items := []models.OrderItem{
		{Type: "shirt", ServiceType: "wash_fold", Quantity: 4, PricingModel: "per_piece"},
	}

	pricing, _, err := CalculatePricing(items, vendor, "quick", sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pricing.Subtotal != 100 {
		t.Errorf("expected subtotal 100, got %v", pricing.Subtotal)
	}
	if pricing.ExpressFee != 30 {
		t.Errorf("expected express fee 30, got %v", pricing.ExpressFee)
	}
	if pricing.Discount != 10 {
		t.Errorf("expected discount 10, got %v", pricing.Discount)
	}
	if pricing.Total != 120 {
		t.Errorf("expected total 120, got %v", pricing.Total)
	}
}

func TestNonPositiveTotalRejected(t *testing.T) {
	vendor := testVendor()
	sub := &models.Subscription{Plan: models.VendorPlan{DiscountPercent: 100}}

	items := []models.OrderItem{
		{Type: "shirt", ServiceType: "wash_fold", Quantity: 1, PricingModel: "per_piece"},
	}

	if _, _, err := CalculatePricing(items, vendor, "scheduled", sub); err == nil {
		t.Fatal("expected error for non-positive total")
	}
}

func TestEmptyItemsRejected(t *testing.T) {
	if _, _, err := CalculatePricing(nil, testVendor(), "scheduled", nil); err == nil {
		t.Fatal("expected error for empty item list")
	}
}

func TestEstimateWeight(t *testing.T) {
	items := []models.OrderItem{
		{Type: "shirt", Quantity: 4, PricingModel: "per_piece"},
		{Type: "mixed", Quantity: 1, PricingModel: "weight_based", Weight: 3},
	}
	// 4 × 0.5 + 3 = 5
	if got := EstimateWeight(items); got != 5 {
		t.Errorf("expected 5 kg, got %v", got)
	}
}

func TestCountItems(t *testing.T) {
	items := []models.OrderItem{
		{Quantity: 2},
		{Quantity: 0},   // clamps up to 1
		{Quantity: 200}, // clamps down to 100
	}
	if got := CountItems(items); got != 103 {
		t.Errorf("expected 103, got %d", got)
	}
}

func TestEstimateDeliveryDate(t *testing.T) {
	vendor := testVendor()
	pickup := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("quick uses vendor turnaround", func(t *testing.T) {
		got, err := EstimateDeliveryDate(pickup, time.Time{}, vendor, "quick")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := pickup.Add(8 * time.Hour); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("scheduled honors requested date", func(t *testing.T) {
		requested := pickup.Add(72 * time.Hour)
		got, err := EstimateDeliveryDate(pickup, requested, vendor, "scheduled")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(requested) {
			t.Errorf("expected %v, got %v", requested, got)
		}
	})

	t.Run("scheduled falls back to standard turnaround", func(t *testing.T) {
		got, err := EstimateDeliveryDate(pickup, time.Time{}, vendor, "scheduled")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := pickup.Add(48 * time.Hour); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("delivery before pickup is an error", func(t *testing.T) {
		if _, err := EstimateDeliveryDate(pickup, pickup.Add(-time.Hour), vendor, "scheduled"); err == nil {
			t.Fatal("expected error for delivery before pickup")
		}
	})
}
