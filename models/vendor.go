package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuickServiceConfig controls same-day express pickup for a vendor.
type QuickServiceConfig struct {
	Enabled           bool    `bson:"enabled" json:"enabled"`
	MaxTurnaroundHrs  int     `bson:"maxTurnaroundHrs" json:"maxTurnaroundHrs"` // delivery estimate, default 8
	ExpressFee        float64 `bson:"expressFee" json:"expressFee"`
	CutoffHour        int     `bson:"cutoffHour,omitempty" json:"cutoffHour,omitempty"`
	MaxOrdersPerDay   int     `bson:"maxOrdersPerDay,omitempty" json:"maxOrdersPerDay,omitempty"`
	ServiceableRadius float64 `bson:"serviceableRadius,omitempty" json:"serviceableRadius,omitempty"`
}

// ScheduledServiceConfig is on by default; Enabled is a pointer so an
// absent flag reads as available.
type ScheduledServiceConfig struct {
	Enabled        *bool `bson:"enabled,omitempty" json:"enabled,omitempty"`
	TurnaroundHrs  int   `bson:"turnaroundHrs" json:"turnaroundHrs"` // standard window, default 48
	AdvanceDaysMax int   `bson:"advanceDaysMax,omitempty" json:"advanceDaysMax,omitempty"`
}

// Available reports whether scheduled service is offered; only an explicit
// false disables it.
func (c ScheduledServiceConfig) Available() bool {
	return c.Enabled == nil || *c.Enabled
}

type SubscriptionServiceConfig struct {
	Enabled bool `bson:"enabled" json:"enabled"`
}

// VendorPlan is a subscription plan definition as configured by the vendor.
type VendorPlan struct {
	PlanID            string   `bson:"planId" json:"planId"`
	Name              string   `bson:"name" json:"name"`
	Description       string   `bson:"description,omitempty" json:"description,omitempty"`
	Price             float64  `bson:"price" json:"price"`
	FrequencyType     string   `bson:"frequencyType" json:"frequencyType"` // weekly, monthly
	WeightQuotaKg     float64  `bson:"weightQuotaKg" json:"weightQuotaKg"`
	PickupQuota       int      `bson:"pickupQuota" json:"pickupQuota"`
	QuickServiceQuota int      `bson:"quickServiceQuota" json:"quickServiceQuota"`
	AddOnQuota        int      `bson:"addOnQuota" json:"addOnQuota"`
	DiscountPercent   float64  `bson:"discountPercent,omitempty" json:"discountPercent,omitempty"`
	Features          []string `bson:"features,omitempty" json:"features,omitempty"`
	IsActive          bool     `bson:"isActive" json:"isActive"`
}

// Vendor is a service provider with configurable pricing and capability flags.
type Vendor struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	VendorID string             `bson:"vendorid" json:"vendorid"`
	OwnerID  string             `bson:"ownerId" json:"ownerId"`
	Name     string             `bson:"name" json:"name"`
	Address  Address            `bson:"address,omitempty" json:"address,omitempty"`
	IsActive bool               `bson:"isActive" json:"isActive"`

	// Services lists the service types the vendor offers (wash_fold,
	// wash_iron, dry_clean, iron_only, ...).
	Services []string `bson:"services" json:"services"`

	// Pricing maps item type -> service type -> price per piece.
	Pricing map[string]map[string]float64 `bson:"pricing" json:"pricing"`

	// WeightPricing maps service type -> price per kg.
	WeightPricing map[string]float64 `bson:"weightPricing" json:"weightPricing"`

	QuickService        QuickServiceConfig        `bson:"quickServiceConfig" json:"quickServiceConfig"`
	ScheduledService    ScheduledServiceConfig    `bson:"scheduledServiceConfig" json:"scheduledServiceConfig"`
	SubscriptionService SubscriptionServiceConfig `bson:"subscriptionServiceConfig" json:"subscriptionServiceConfig"`

	Plans []VendorPlan `bson:"subscriptionPlans,omitempty" json:"subscriptionPlans,omitempty"`

	// Aggregate counters, adjusted as order/subscription side effects.
	TotalOrders         int     `bson:"totalOrders" json:"totalOrders"`
	ActiveSubscriptions int     `bson:"activeSubscriptions" json:"activeSubscriptions"`
	Rating              float64 `bson:"rating" json:"rating"`
	TotalReviews        int     `bson:"totalReviews" json:"totalReviews"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PlanByID returns the plan definition with the given id, or nil.
func (v *Vendor) PlanByID(planID string) *VendorPlan {
	for i := range v.Plans {
		if v.Plans[i].PlanID == planID {
			return &v.Plans[i]
		}
	}
	return nil
}

// OffersService reports whether the vendor offers the given service type.
func (v *Vendor) OffersService(serviceType string) bool {
	for _, s := range v.Services {
		if s == serviceType {
			return true
		}
	}
	return false
}
