package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/mq"
	"tastyaana/rdx"
	"tastyaana/tracker"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type createOrderRequest struct {
	VendorID        string             `json:"vendorId"`
	Items           []models.OrderItem `json:"items"`
	DeliverySpeed   string             `json:"deliverySpeed"`
	SubscriptionID  string             `json:"subscriptionId"`
	PickupDate      time.Time          `json:"pickupDate"`
	PickupSlot      string             `json:"pickupSlot"`
	PickupAddress   models.Address     `json:"pickupAddress"`
	DeliveryDate    time.Time          `json:"deliveryDate"`
	DeliverySlot    string             `json:"deliverySlot"`
	DeliveryAddress *models.Address    `json:"deliveryAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

var validSpeeds = map[string]bool{"quick": true, "scheduled": true, "subscription": true}
var validPricingModels = map[string]bool{"": true, "per_piece": true, "weight_based": true}

// POST /api/laundry/orders
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 1. vendor exists and is active
	var vendor models.Vendor
	err := db.VendorsCollection.FindOne(context.TODO(), bson.M{"vendorid": req.VendorID}).Decode(&vendor)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Vendor not found")
		return
	}
	if !vendor.IsActive {
		utils.RespondWithError(w, http.StatusBadRequest, "Vendor is not currently accepting orders")
		return
	}

	// 2.–4. items, service availability, delivery speed
	if msg := validateItems(req.Items, &vendor); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	if !validSpeeds[req.DeliverySpeed] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid delivery speed")
		return
	}
	if req.DeliverySpeed == "quick" && !vendor.QuickService.Enabled {
		utils.RespondWithError(w, http.StatusBadRequest, "Vendor does not offer quick service")
		return
	}
	if req.DeliverySpeed == "scheduled" && !vendor.ScheduledService.Available() {
		utils.RespondWithError(w, http.StatusBadRequest, "Vendor does not offer scheduled service")
		return
	}
	if req.DeliverySpeed == "subscription" && !vendor.SubscriptionService.Enabled {
		utils.RespondWithError(w, http.StatusBadRequest, "Vendor does not offer subscription service")
		return
	}

	// 5. pickup address
	if msg := validateAddress(req.PickupAddress); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	// 6. pickup date; quick orders default to today
	pickupDate := req.PickupDate
	if req.DeliverySpeed == "quick" && pickupDate.IsZero() {
		pickupDate = time.Now()
	}
	if pickupDate.IsZero() {
		utils.RespondWithError(w, http.StatusBadRequest, "Pickup date is required")
		return
	}
	if utils.StartOfDay(pickupDate).Before(utils.StartOfDay(time.Now())) {
		utils.RespondWithError(w, http.StatusBadRequest, "Pickup date cannot be in the past")
		return
	}

	// 7. subscription resolution
	subscription, msg, code := resolveSubscription(userID, req.VendorID, req.SubscriptionID, req.DeliverySpeed)
	if msg != "" {
		utils.RespondWithError(w, code, msg)
		return
	}

	pricing, items, err := CalculatePricing(req.Items, &vendor, req.DeliverySpeed, subscription)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Price calculation failed", err)
		return
	}

	deliveryDate, err := EstimateDeliveryDate(pickupDate, req.DeliveryDate, &vendor, req.DeliverySpeed)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Could not determine a valid delivery date")
		return
	}

	now := time.Now()
	order := models.Order{
		OrderID:         utils.GetUUID(),
		OrderNumber:     generateOrderNumber(),
		UserID:          userID,
		VendorID:        vendor.VendorID,
		OrderType:       "regular",
		DeliverySpeed:   req.DeliverySpeed,
		Items:           items,
		Pricing:         pricing,
		TotalItems:      CountItems(items),
		EstimatedWeight: EstimateWeight(items),
		Schedule: models.Schedule{
			PickupDate:      pickupDate,
			PickupSlot:      req.PickupSlot,
			PickupAddress:   req.PickupAddress,
			DeliveryDate:    deliveryDate,
			DeliverySlot:    req.DeliverySlot,
			DeliveryAddress: req.DeliveryAddress,
		},
		Status: models.StatusScheduled,
		StatusHistory: []models.StatusEntry{{
			Status:    models.StatusScheduled,
			Timestamp: now,
			Note:      "Order placed",
			UpdatedBy: userID,
		}},
		Payment:   models.Payment{Method: req.PaymentMethod, Status: "pending"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if subscription != nil {
		order.SubscriptionID = subscription.SubscriptionID
		order.OrderType = "subscription"
	}

	if _, err := db.OrdersCollection.InsertOne(context.TODO(), order); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to create order", err)
		return
	}

	// Side effects are best-effort; the order stands even if a counter
	// update fails.
	bumpVendorOrders(vendor.VendorID)
	if subscription != nil {
		recordSubscriptionUsage(subscription, &order)
	}

	m := models.Index{EntityType: "order", EntityId: order.OrderID, ItemId: vendor.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "order-created", m)
	tracker.BroadcastOrderUpdate(order.OrderID, models.StatusScheduled, "Order placed")

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "order": order})
}

// POST /api/laundry/calculate-price — pricing preview, nothing persisted
func CalculatePrice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var vendor models.Vendor
	err := db.VendorsCollection.FindOne(context.TODO(), bson.M{"vendorid": req.VendorID}).Decode(&vendor)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Vendor not found")
		return
	}

	if msg := validateItems(req.Items, &vendor); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	speed := req.DeliverySpeed
	if speed == "" {
		speed = "scheduled"
	}

	pricing, items, err := CalculatePricing(req.Items, &vendor, speed, nil)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Price calculation failed", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":         true,
		"pricing":         pricing,
		"items":           items,
		"totalItems":      CountItems(items),
		"estimatedWeight": EstimateWeight(items),
	})
}

func validateItems(items []models.OrderItem, vendor *models.Vendor) string {
	if len(items) == 0 {
		return "At least one item is required"
	}
	for _, item := range items {
		if item.Type == "" || item.ServiceType == "" {
			return "Each item needs a type and a service type"
		}
		if !validPricingModels[item.PricingModel] {
			return fmt.Sprintf("Unknown pricing model %q", item.PricingModel)
		}
		if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
			return fmt.Sprintf("Item quantity must be between %d and %d", MinQuantity, MaxQuantity)
		}
		if item.PricingModel == "weight_based" && (item.Weight < MinWeightKg || item.Weight > MaxWeightKg) {
			return fmt.Sprintf("Item weight must be between %.1f and %.0f kg", MinWeightKg, MaxWeightKg)
		}
		if !vendor.OffersService(item.ServiceType) {
			return fmt.Sprintf("Vendor does not offer service %q", item.ServiceType)
		}
	}
	return ""
}

func validateAddress(addr models.Address) string {
	if addr.Street == "" {
		return "Pickup address street is required"
	}
	if !utils.IsValidPincode(addr.Pincode) {
		return "Pickup address needs a valid 6-digit pincode"
	}
	if addr.ContactName == "" {
		return "Pickup contact name is required"
	}
	if !utils.IsValidPhone(addr.ContactPhone) {
		return "Pickup contact needs a valid 10-digit mobile number"
	}
	return ""
}

// resolveSubscription applies rule 7 of order validation. Returns the
// subscription to bill against (possibly nil), or an error message + status.
func resolveSubscription(userID, vendorID, subscriptionID, deliverySpeed string) (*models.Subscription, string, int) {
	if subscriptionID != "" {
		var sub models.Subscription
		err := db.SubscriptionsCollection.FindOne(context.TODO(), bson.M{"subscriptionid": subscriptionID}).Decode(&sub)
		if err != nil {
			return nil, "Subscription not found", http.StatusNotFound
		}
		if sub.UserID != userID {
			return nil, "Subscription does not belong to you", http.StatusForbidden
		}
		return &sub, "", 0
	}

	if deliverySpeed != "subscription" {
		return nil, "", 0
	}

	var sub models.Subscription
	err := db.SubscriptionsCollection.FindOne(context.TODO(), bson.M{
		"userId":   userID,
		"vendorId": vendorID,
		"status":   models.SubActive,
	}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, "No active subscription found with this vendor", http.StatusBadRequest
	}
	if err != nil {
		return nil, "Failed to look up subscription", http.StatusInternalServerError
	}
	return &sub, "", 0
}

// generateOrderNumber derives TY-LAU-###### from a live document count,
// falling back to a timestamp-derived number when the count fails. The
// fallback accepts a small collision risk in exchange for availability;
// the unique index rejects the rare clash.
func generateOrderNumber() string {
	count, err := db.OrdersCollection.CountDocuments(context.TODO(), bson.M{})
	if err != nil {
		log.Println("order count failed, using timestamp fallback:", err)
		return fmt.Sprintf("TY-LAU-%06d", time.Now().Unix()%1000000)
	}
	return fmt.Sprintf("TY-LAU-%06d", count+1)
}

func bumpVendorOrders(vendorID string) {
	_, err := db.VendorsCollection.UpdateOne(
		context.TODO(),
		bson.M{"vendorid": vendorID},
		bson.M{"$inc": bson.M{"totalOrders": 1}},
	)
	if err != nil {
		log.Printf("vendor stat update failed for %s: %v", vendorID, err)
		rdx.QueueStatRetry(rdx.StatIncrement{VendorID: vendorID, Field: "totalOrders", Delta: 1})
	}
}

// recordSubscriptionUsage bumps the monthly usage counters for an order
// billed against a subscription. Failures are logged and swallowed.
func recordSubscriptionUsage(sub *models.Subscription, order *models.Order) {
	sub.Usage.PickupsCompleted++
	sub.Usage.WeightUsedKg += order.EstimatedWeight
	sub.Usage.ItemsCleaned += order.TotalItems
	if order.DeliverySpeed == "quick" {
		sub.Usage.QuickServicesUsed++
	}
	sub.CalculateRemaining()

	_, err := db.SubscriptionsCollection.UpdateOne(
		context.TODO(),
		bson.M{"subscriptionid": sub.SubscriptionID},
		bson.M{"$set": bson.M{"usage": sub.Usage, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Printf("subscription usage update failed for %s: %v", sub.SubscriptionID, err)
	}
}
