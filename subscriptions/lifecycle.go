package subscriptions

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/mq"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/laundry/subscriptions/:subscriptionid/pause
func PauseSubscription(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sub, ok := loadOwnSubscription(w, r, ps)
	if !ok {
		return
	}

	if sub.Status != models.SubActive {
		utils.RespondWithError(w, http.StatusBadRequest, "Only an active subscription can be paused")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record := models.PauseRecord{PausedAt: time.Now(), Reason: body.Reason}

	_, err := db.SubscriptionsCollection.UpdateOne(
		context.TODO(),
		bson.M{"subscriptionid": sub.SubscriptionID},
		bson.M{
			"$set":  bson.M{"status": models.SubPaused, "updatedAt": time.Now()},
			"$push": bson.M{"pauseHistory": record},
		},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to pause subscription", err)
		return
	}

	m := models.Index{EntityType: "subscription", EntityId: sub.SubscriptionID, ItemId: sub.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "subscription-paused", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": models.SubPaused})
}

// POST /api/laundry/subscriptions/:subscriptionid/resume
func ResumeSubscription(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sub, ok := loadOwnSubscription(w, r, ps)
	if !ok {
		return
	}

	if sub.Status != models.SubPaused {
		utils.RespondWithError(w, http.StatusBadRequest, "Only a paused subscription can be resumed")
		return
	}

	// most recent unresolved pause
	idx := -1
	for i := len(sub.PauseHistory) - 1; i >= 0; i-- {
		if sub.PauseHistory[i].ResumedAt == nil {
			idx = i
			break
		}
	}
	if idx < 0 {
		utils.RespondWithError(w, http.StatusInternalServerError, "Subscription has no open pause record")
		return
	}

	now := time.Now()
	days := PauseExtensionDays(sub.PauseHistory[idx].PausedAt, now)

	sub.PauseHistory[idx].ResumedAt = &now
	sub.PauseHistory[idx].DaysExtended = days
	sub.Period.EndDate = sub.Period.EndDate.AddDate(0, 0, days)
	sub.Period.NextRenewalDate = sub.Period.NextRenewalDate.AddDate(0, 0, days)

	_, err := db.SubscriptionsCollection.UpdateOne(
		context.TODO(),
		bson.M{"subscriptionid": sub.SubscriptionID},
		bson.M{"$set": bson.M{
			"status":       models.SubActive,
			"period":       sub.Period,
			"pauseHistory": sub.PauseHistory,
			"updatedAt":    now,
		}},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to resume subscription", err)
		return
	}

	m := models.Index{EntityType: "subscription", EntityId: sub.SubscriptionID, ItemId: sub.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "subscription-resumed", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"status":       models.SubActive,
		"daysExtended": days,
		"period":       sub.Period,
	})
}

// POST /api/laundry/subscriptions/:subscriptionid/cancel
func CancelSubscription(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sub, ok := loadOwnSubscription(w, r, ps)
	if !ok {
		return
	}

	if sub.Status == models.SubCancelled {
		utils.RespondWithError(w, http.StatusBadRequest, "Subscription is already cancelled")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	now := time.Now()
	cancellation := models.Cancellation{
		Reason:       body.Reason,
		CancelledBy:  sub.UserID,
		CancelledAt:  now,
		RefundStatus: "pending",
	}

	_, err := db.SubscriptionsCollection.UpdateOne(
		context.TODO(),
		bson.M{"subscriptionid": sub.SubscriptionID},
		bson.M{"$set": bson.M{
			"status":       models.SubCancelled,
			"cancellation": &cancellation,
			"updatedAt":    now,
		}},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to cancel subscription", err)
		return
	}

	bumpActiveSubscriptions(sub.VendorID, -1)

	m := models.Index{EntityType: "subscription", EntityId: sub.SubscriptionID, ItemId: sub.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "subscription-cancelled", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": models.SubCancelled})
}

// PauseExtensionDays returns the whole days (ceiling) a subscription spent
// paused, the amount by which its period is extended on resume.
func PauseExtensionDays(pausedAt, resumedAt time.Time) int {
	elapsed := resumedAt.Sub(pausedAt)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}
