package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SubActive    = "active"
	SubPaused    = "paused"
	SubCancelled = "cancelled"
	SubExpired   = "expired"
)

type Period struct {
	StartDate       time.Time `bson:"startDate" json:"startDate"`
	EndDate         time.Time `bson:"endDate" json:"endDate"`
	NextRenewalDate time.Time `bson:"nextRenewalDate" json:"nextRenewalDate"`
}

// Usage tracks the current billing period's consumption. Remaining fields
// are derived from the plan snapshot, never negative.
type Usage struct {
	WeightUsedKg           float64 `bson:"weightUsedKg" json:"weightUsedKg"`
	WeightRemainingKg      float64 `bson:"weightRemainingKg" json:"weightRemainingKg"`
	PickupsCompleted       int     `bson:"pickupsCompleted" json:"pickupsCompleted"`
	PickupsRemaining       int     `bson:"pickupsRemaining" json:"pickupsRemaining"`
	ItemsCleaned           int     `bson:"itemsCleaned" json:"itemsCleaned"`
	QuickServicesUsed      int     `bson:"quickServicesUsed" json:"quickServicesUsed"`
	QuickServicesRemaining int     `bson:"quickServicesRemaining" json:"quickServicesRemaining"`
	AddOnsUsed             int     `bson:"addOnsUsed" json:"addOnsUsed"`
	AddOnsRemaining        int     `bson:"addOnsRemaining" json:"addOnsRemaining"`
}

type PauseRecord struct {
	PausedAt     time.Time  `bson:"pausedAt" json:"pausedAt"`
	Reason       string     `bson:"reason,omitempty" json:"reason,omitempty"`
	ResumedAt    *time.Time `bson:"resumedAt,omitempty" json:"resumedAt,omitempty"`
	DaysExtended int        `bson:"daysExtended,omitempty" json:"daysExtended,omitempty"`
}

type SubscriptionPreferences struct {
	PickupSlot           string  `bson:"pickupSlot,omitempty" json:"pickupSlot,omitempty"`
	Address              Address `bson:"address,omitempty" json:"address,omitempty"`
	DeliveryInstructions string  `bson:"deliveryInstructions,omitempty" json:"deliveryInstructions,omitempty"`
}

// Subscription is a recurring commitment to a vendor's plan. Plan is a
// snapshot frozen at creation time; later vendor plan edits do not apply.
type Subscription struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	SubscriptionID string             `bson:"subscriptionid" json:"subscriptionid"`
	UserID         string             `bson:"userId" json:"userId"`
	VendorID       string             `bson:"vendorId" json:"vendorId"`
	PlanID         string             `bson:"planId" json:"planId"`
	Plan           VendorPlan         `bson:"plan" json:"plan"`
	Status         string             `bson:"status" json:"status"`

	Period       Period                  `bson:"period" json:"period"`
	Usage        Usage                   `bson:"usage" json:"usage"`
	PauseHistory []PauseRecord           `bson:"pauseHistory,omitempty" json:"pauseHistory,omitempty"`
	Preferences  SubscriptionPreferences `bson:"preferences,omitempty" json:"preferences,omitempty"`
	AutoRenewal  bool                    `bson:"autoRenewal" json:"autoRenewal"`
	Cancellation *Cancellation           `bson:"cancellation,omitempty" json:"cancellation,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CalculateRemaining rederives the remaining-quota fields from the plan
// snapshot minus usage, clamped at zero.
func (s *Subscription) CalculateRemaining() {
	s.Usage.WeightRemainingKg = clampF(s.Plan.WeightQuotaKg - s.Usage.WeightUsedKg)
	s.Usage.PickupsRemaining = clampI(s.Plan.PickupQuota - s.Usage.PickupsCompleted)
	s.Usage.QuickServicesRemaining = clampI(s.Plan.QuickServiceQuota - s.Usage.QuickServicesUsed)
	s.Usage.AddOnsRemaining = clampI(s.Plan.AddOnQuota - s.Usage.AddOnsUsed)
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampI(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
