package subscriptions

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/mq"
	"tastyaana/rdx"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type createSubscriptionRequest struct {
	VendorID    string                         `json:"vendorId"`
	PlanID      string                         `json:"planId"`
	StartDate   time.Time                      `json:"startDate"`
	AutoRenewal bool                           `json:"autoRenewal"`
	Preferences models.SubscriptionPreferences `json:"preferences"`
}

// POST /api/laundry/subscriptions
func CreateSubscription(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createSubscriptionRequest
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
	if !vendor.IsActive {
		utils.RespondWithError(w, http.StatusBadRequest, "Vendor is not currently active")
		return
	}

	plan := vendor.PlanByID(req.PlanID)
	if plan == nil || !plan.IsActive {
		utils.RespondWithError(w, http.StatusNotFound, "Plan not found or inactive")
		return
	}

	count, err := db.SubscriptionsCollection.CountDocuments(context.TODO(), bson.M{
		"userId":   userID,
		"vendorId": req.VendorID,
		"status":   models.SubActive,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing subscriptions")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "You already have an active subscription with this vendor")
		return
	}

	now := time.Now()
	start := req.StartDate
	// past start dates are clamped forward to today
	if start.IsZero() || utils.StartOfDay(start).Before(utils.StartOfDay(now)) {
		start = now
	}

	sub := models.Subscription{
		SubscriptionID: utils.GetUUID(),
		UserID:         userID,
		VendorID:       req.VendorID,
		PlanID:         plan.PlanID,
		Plan:           *plan, // snapshot; later plan edits do not apply
		Status:         models.SubActive,
		Period:         NewPeriod(start),
		Preferences:    req.Preferences,
		AutoRenewal:    req.AutoRenewal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	sub.CalculateRemaining()

	if _, err := db.SubscriptionsCollection.InsertOne(context.TODO(), sub); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to create subscription", err)
		return
	}

	bumpActiveSubscriptions(req.VendorID, 1)

	m := models.Index{EntityType: "subscription", EntityId: sub.SubscriptionID, ItemId: req.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "subscription-created", m)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "subscription": sub})
}

// GET /api/laundry/subscriptions
func GetSubscriptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"userId": userID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	subs, err := utils.FindAndDecode[models.Subscription](ctx, db.SubscriptionsCollection, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	for i := range subs {
		subs[i].CalculateRemaining()
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "subscriptions": subs})
}

// GET /api/laundry/subscriptions/:subscriptionid/usage
func GetUsage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sub, ok := loadOwnSubscription(w, r, ps)
	if !ok {
		return
	}

	sub.CalculateRemaining()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"usage":   sub.Usage,
		"period":  sub.Period,
		"status":  sub.Status,
	})
}

// PUT /api/laundry/subscriptions/:subscriptionid/preferences
func UpdatePreferences(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sub, ok := loadOwnSubscription(w, r, ps)
	if !ok {
		return
	}

	var prefs models.SubscriptionPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid preferences")
		return
	}
	if prefs.Address.ContactPhone != "" && !utils.IsValidPhone(prefs.Address.ContactPhone) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid contact phone")
		return
	}
	if prefs.Address.Pincode != "" && !utils.IsValidPincode(prefs.Address.Pincode) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pincode")
		return
	}

	_, err := db.SubscriptionsCollection.UpdateOne(
		context.TODO(),
		bson.M{"subscriptionid": sub.SubscriptionID},
		bson.M{"$set": bson.M{"preferences": prefs, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update preferences", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "preferences": prefs})
}

// POST /api/laundry/subscriptions/:subscriptionid/auto-renewal
func ToggleAutoRenewal(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sub, ok := loadOwnSubscription(w, r, ps)
	if !ok {
		return
	}

	var body struct {
		AutoRenewal bool `json:"autoRenewal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err := db.SubscriptionsCollection.UpdateOne(
		context.TODO(),
		bson.M{"subscriptionid": sub.SubscriptionID},
		bson.M{"$set": bson.M{"autoRenewal": body.AutoRenewal, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update auto-renewal", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "autoRenewal": body.AutoRenewal})
}

// NewPeriod builds the billing period for a subscription starting at start.
// The end date is always one month out; weekly plans share the same billing
// period and differ only in pickup cadence.
func NewPeriod(start time.Time) models.Period {
	end := start.AddDate(0, 1, 0)
	return models.Period{
		StartDate:       start,
		EndDate:         end,
		NextRenewalDate: end,
	}
}

// loadOwnSubscription fetches the subscription in the route and verifies the
// caller owns it, writing the error response itself when not.
func loadOwnSubscription(w http.ResponseWriter, r *http.Request, ps httprouter.Params) (*models.Subscription, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var sub models.Subscription
	err := db.SubscriptionsCollection.FindOne(context.TODO(), bson.M{"subscriptionid": ps.ByName("subscriptionid")}).Decode(&sub)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Subscription not found")
		return nil, false
	}
	if sub.UserID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return &sub, true
}

// bumpActiveSubscriptions adjusts the vendor counter; decrements are
// floor-clamped at zero by the filter.
func bumpActiveSubscriptions(vendorID string, delta int) {
	filter := bson.M{"vendorid": vendorID}
	if delta < 0 {
		filter["activeSubscriptions"] = bson.M{"$gt": 0}
	}
	_, err := db.VendorsCollection.UpdateOne(
		context.TODO(),
		filter,
		bson.M{"$inc": bson.M{"activeSubscriptions": delta}},
	)
	if err != nil {
		log.Printf("vendor subscription counter update failed for %s: %v", vendorID, err)
		rdx.QueueStatRetry(rdx.StatIncrement{VendorID: vendorID, Field: "activeSubscriptions", Delta: delta})
	}
}
