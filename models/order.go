package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses in progression order.
const (
	StatusScheduled      = "scheduled"
	StatusPickedUp       = "picked_up"
	StatusProcessing     = "processing"
	StatusQualityCheck   = "quality_check"
	StatusReady          = "ready"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// OrderStatusChain is the forward progression of a live order.
var OrderStatusChain = []string{
	StatusScheduled,
	StatusPickedUp,
	StatusProcessing,
	StatusQualityCheck,
	StatusReady,
	StatusOutForDelivery,
	StatusDelivered,
}

var statusRank = func() map[string]int {
	m := make(map[string]int, len(OrderStatusChain))
	for i, s := range OrderStatusChain {
		m[s] = i
	}
	return m
}()

// IsValidStatus reports whether s is a known order status.
func IsValidStatus(s string) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Forward movement along the chain is allowed (vendors may skip intermediate
// steps); cancelled is reachable from any non-terminal state.
func CanTransition(from, to string) bool {
	if from == StatusDelivered || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// IsCancellable reports whether an order in this status may still be
// cancelled by the customer.
func IsCancellable(status string) bool {
	switch status {
	case StatusDelivered, StatusCancelled, StatusOutForDelivery:
		return false
	}
	return true
}

type Address struct {
	Street       string `bson:"street" json:"street"`
	Landmark     string `bson:"landmark,omitempty" json:"landmark,omitempty"`
	City         string `bson:"city,omitempty" json:"city,omitempty"`
	Pincode      string `bson:"pincode" json:"pincode"`
	ContactName  string `bson:"contactName" json:"contactName"`
	ContactPhone string `bson:"contactPhone" json:"contactPhone"`
}

type OrderItem struct {
	Category     string  `bson:"category" json:"category"`
	Type         string  `bson:"type" json:"type"`
	ServiceType  string  `bson:"serviceType" json:"serviceType"`
	PricingModel string  `bson:"pricingModel" json:"pricingModel"` // per_piece, weight_based
	Quantity     int     `bson:"quantity" json:"quantity"`
	Weight       float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg, weight_based only

	// Caller-supplied price overrides; zero means "look up".
	PricePerItem float64 `bson:"pricePerItem,omitempty" json:"pricePerItem,omitempty"`
	PricePerKg   float64 `bson:"pricePerKg,omitempty" json:"pricePerKg,omitempty"`

	TotalPrice float64 `bson:"totalPrice" json:"totalPrice"`
}

type Pricing struct {
	Subtotal   float64 `bson:"subtotal" json:"subtotal"`
	ExpressFee float64 `bson:"expressFee" json:"expressFee"`
	Discount   float64 `bson:"discount" json:"discount"`
	Total      float64 `bson:"total" json:"total"`
}

type Schedule struct {
	PickupDate      time.Time `bson:"pickupDate" json:"pickupDate"`
	PickupSlot      string    `bson:"pickupSlot,omitempty" json:"pickupSlot,omitempty"`
	PickupAddress   Address   `bson:"pickupAddress" json:"pickupAddress"`
	DeliveryDate    time.Time `bson:"deliveryDate" json:"deliveryDate"`
	DeliverySlot    string    `bson:"deliverySlot,omitempty" json:"deliverySlot,omitempty"`
	DeliveryAddress *Address  `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`

	ActualPickupTime      *time.Time `bson:"actualPickupTime,omitempty" json:"actualPickupTime,omitempty"`
	ActualDeliveryTime    *time.Time `bson:"actualDeliveryTime,omitempty" json:"actualDeliveryTime,omitempty"`
	ProcessingStartedAt   *time.Time `bson:"processingStartedAt,omitempty" json:"processingStartedAt,omitempty"`
	ProcessingCompletedAt *time.Time `bson:"processingCompletedAt,omitempty" json:"processingCompletedAt,omitempty"`
	ActualWeight          float64    `bson:"actualWeight,omitempty" json:"actualWeight,omitempty"`
}

// StatusEntry is one append-only status history record.
type StatusEntry struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedBy string    `bson:"updatedBy" json:"updatedBy"`
}

type Payment struct {
	Method       string     `bson:"method" json:"method"` // cod, upi, card, wallet
	Status       string     `bson:"status" json:"status"` // pending, paid, refund_pending, refunded
	PaidAt       *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	RefundAmount float64    `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`
}

type Cancellation struct {
	Reason       string    `bson:"reason" json:"reason"`
	CancelledBy  string    `bson:"cancelledBy" json:"cancelledBy"`
	CancelledAt  time.Time `bson:"cancelledAt" json:"cancelledAt"`
	RefundStatus string    `bson:"refundStatus,omitempty" json:"refundStatus,omitempty"`
}

type OrderFeedback struct {
	Rating      int       `bson:"rating" json:"rating"`
	Review      string    `bson:"review,omitempty" json:"review,omitempty"`
	Photos      []string  `bson:"photos,omitempty" json:"photos,omitempty"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
}

// Order represents one delivery transaction.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID        string             `bson:"orderid" json:"orderid"`
	OrderNumber    string             `bson:"orderNumber" json:"orderNumber"`
	UserID         string             `bson:"userId" json:"userId"`
	VendorID       string             `bson:"vendorId" json:"vendorId"`
	SubscriptionID string             `bson:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	OrderType      string             `bson:"orderType" json:"orderType"` // regular, subscription
	DeliverySpeed  string             `bson:"deliverySpeed" json:"deliverySpeed"`

	Items           []OrderItem `bson:"items" json:"items"`
	Pricing         Pricing     `bson:"pricing" json:"pricing"`
	TotalItems      int         `bson:"totalItems" json:"totalItems"`
	EstimatedWeight float64     `bson:"estimatedWeight" json:"estimatedWeight"`

	Schedule      Schedule      `bson:"schedule" json:"schedule"`
	Status        string        `bson:"status" json:"status"`
	StatusHistory []StatusEntry `bson:"statusHistory" json:"statusHistory"`

	Payment      Payment        `bson:"payment" json:"payment"`
	Cancellation *Cancellation  `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	Feedback     *OrderFeedback `bson:"feedback,omitempty" json:"feedback,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
