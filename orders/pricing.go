package orders

import (
	"errors"
	"fmt"
	"time"

	"tastyaana/models"
	"tastyaana/utils"
)

const (
	MinQuantity = 1
	MaxQuantity = 100
	MinWeightKg = 0.1
	MaxWeightKg = 50.0

	// fallback prices when neither the item nor the vendor table carries one
	defaultPricePerItem = 30.0
	defaultPricePerKg   = 60.0

	// assumed weight of a per-piece item for load estimation
	perPieceWeightKg = 0.5
)

// categoryByType classifies item types when the caller does not supply a
// category.
var categoryByType = map[string]string{
	"shirt": "clothing", "tshirt": "clothing", "pants": "clothing",
	"jeans": "clothing", "kurta": "clothing", "dress": "clothing",
	"skirt": "clothing", "shorts": "clothing", "innerwear": "clothing",
	"bedsheet": "household", "blanket": "household", "curtain": "household",
	"towel": "household", "pillow_cover": "household",
	"sweater": "woolens", "jacket": "woolens", "coat": "woolens", "shawl": "woolens",
	"shoes": "footwear", "sneakers": "footwear",
	"saree": "special_care", "suit": "special_care", "lehenga": "special_care",
}

// ClassifyCategory returns the catalogue category for an item type, or
// "general" when the type is unknown.
func ClassifyCategory(itemType string) string {
	if c, ok := categoryByType[itemType]; ok {
		return c
	}
	return "general"
}

func clampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// itemUnitPrice resolves the per-piece or per-kg rate with the precedence:
// item-supplied override, vendor pricing table, model default.
func itemUnitPrice(item models.OrderItem, vendor *models.Vendor) float64 {
	if item.PricingModel == "weight_based" {
		if item.PricePerKg > 0 {
			return item.PricePerKg
		}
		if rate, ok := vendor.WeightPricing[item.ServiceType]; ok && rate > 0 {
			return rate
		}
		return defaultPricePerKg
	}

	if item.PricePerItem > 0 {
		return item.PricePerItem
	}
	if byService, ok := vendor.Pricing[item.Type]; ok {
		if price, ok := byService[item.ServiceType]; ok && price > 0 {
			return price
		}
	}
	return defaultPricePerItem
}

// CalculatePricing computes per-item and aggregate pricing for an order. It
// mutates nothing; the returned items carry clamped quantities, resolved
// categories and computed totals. An aggregate total of zero or less is an
// error, never a silently accepted result.
func CalculatePricing(items []models.OrderItem, vendor *models.Vendor, deliverySpeed string, sub *models.Subscription) (models.Pricing, []models.OrderItem, error) {
	if vendor == nil {
		return models.Pricing{}, nil, errors.New("vendor is required for pricing")
	}
	if len(items) == 0 {
		return models.Pricing{}, nil, errors.New("at least one item is required")
	}

	priced := make([]models.OrderItem, len(items))
	var subtotal float64

	for i, item := range items {
		item.Quantity = clampQuantity(item.Quantity)
		if item.Category == "" {
			item.Category = ClassifyCategory(item.Type)
		}

		rate := itemUnitPrice(item, vendor)
		if item.PricingModel == "weight_based" {
			item.PricePerKg = rate
			item.TotalPrice = utils.RoundMoney(rate * item.Weight * float64(item.Quantity))
		} else {
			item.PricePerItem = rate
			item.TotalPrice = utils.RoundMoney(rate * float64(item.Quantity))
		}

		if item.TotalPrice < 0 {
			return models.Pricing{}, nil, fmt.Errorf("negative price computed for item %q", item.Type)
		}

		subtotal += item.TotalPrice
		priced[i] = item
	}

	pricing := models.Pricing{Subtotal: utils.RoundMoney(subtotal)}

	if deliverySpeed == "quick" && vendor.QuickService.ExpressFee > 0 {
		pricing.ExpressFee = utils.RoundMoney(vendor.QuickService.ExpressFee)
	}

	if sub != nil && sub.Plan.DiscountPercent > 0 {
		pricing.Discount = utils.RoundMoney(pricing.Subtotal * sub.Plan.DiscountPercent / 100)
	}

	pricing.Total = utils.RoundMoney(pricing.Subtotal + pricing.ExpressFee - pricing.Discount)

	if pricing.Total <= 0 {
		return models.Pricing{}, nil, errors.New("pricing calculation produced a non-positive total")
	}

	return pricing, priced, nil
}

// CountItems sums clamped item quantities.
func CountItems(items []models.OrderItem) int {
	total := 0
	for _, item := range items {
		total += clampQuantity(item.Quantity)
	}
	return total
}

// EstimateWeight estimates total load in kg. Per-piece items count at the
// standard assumed weight.
func EstimateWeight(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		w := item.Weight
		if item.PricingModel != "weight_based" || w <= 0 {
			w = perPieceWeightKg
		}
		total += w * float64(clampQuantity(item.Quantity))
	}
	return utils.RoundMoney(total)
}

// EstimateDeliveryDate derives the expected delivery time from the pickup
// date and the vendor's turnaround windows. For scheduled orders a
// caller-supplied delivery date wins.
func EstimateDeliveryDate(pickup time.Time, requested time.Time, vendor *models.Vendor, deliverySpeed string) (time.Time, error) {
	var delivery time.Time

	switch deliverySpeed {
	case "quick":
		hrs := vendor.QuickService.MaxTurnaroundHrs
		if hrs <= 0 {
			hrs = 8
		}
		delivery = pickup.Add(time.Duration(hrs) * time.Hour)
	case "scheduled":
		if !requested.IsZero() {
			delivery = requested
			break
		}
		fallthrough
	default:
		hrs := vendor.ScheduledService.TurnaroundHrs
		if hrs <= 0 {
			hrs = 48
		}
		delivery = pickup.Add(time.Duration(hrs) * time.Hour)
	}

	if delivery.IsZero() || delivery.Before(pickup) {
		return time.Time{}, errors.New("could not determine a valid delivery date")
	}
	return delivery, nil
}
