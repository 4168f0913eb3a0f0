package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/mq"
	"tastyaana/tracker"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// PATCH /api/laundry/orders/:orderid/status — vendor owner or admin
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Status       string  `json:"status"`
		Note         string  `json:"note"`
		ActualWeight float64 `json:"actualWeight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.IsValidStatus(body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !isVendorOwner(userID, order.VendorID) && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Only the vendor or an admin can update order status")
		return
	}

	if !models.CanTransition(order.Status, body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, body.Status))
		return
	}

	now := time.Now()
	set := bson.M{"status": body.Status, "updatedAt": now}

	// Per-state timestamps
	switch body.Status {
	case models.StatusPickedUp:
		set["schedule.actualPickupTime"] = now
		if body.ActualWeight > 0 {
			set["schedule.actualWeight"] = body.ActualWeight
		}
	case models.StatusProcessing:
		set["schedule.processingStartedAt"] = now
	case models.StatusReady:
		set["schedule.processingCompletedAt"] = now
	case models.StatusDelivered:
		set["schedule.actualDeliveryTime"] = now
	}

	entry := models.StatusEntry{
		Status:    body.Status,
		Timestamp: now,
		Note:      body.Note,
		UpdatedBy: userID,
	}

	_, err = db.OrdersCollection.UpdateOne(
		context.TODO(),
		bson.M{"orderid": orderID},
		bson.M{"$set": set, "$push": bson.M{"statusHistory": entry}},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update order status", err)
		return
	}

	m := models.Index{EntityType: "order", EntityId: orderID, ItemId: order.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "order-status", m)
	tracker.BroadcastOrderUpdate(orderID, body.Status, body.Note)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": body.Status})
}

// POST /api/laundry/orders/:orderid/cancel — customer only
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the customer can cancel this order")
		return
	}

	if !models.IsCancellable(order.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot cancel order in status %s", order.Status))
		return
	}

	now := time.Now()
	cancellation := models.Cancellation{
		Reason:      body.Reason,
		CancelledBy: userID,
		CancelledAt: now,
	}

	set := bson.M{
		"status":       models.StatusCancelled,
		"cancellation": &cancellation,
		"updatedAt":    now,
	}

	// Refunds are bookkeeping only; no gateway call happens here.
	if order.Payment.Status == "paid" {
		cancellation.RefundStatus = "pending"
		set["cancellation"] = &cancellation
		set["payment.status"] = "refund_pending"
		set["payment.refundAmount"] = order.Pricing.Total
	}

	entry := models.StatusEntry{
		Status:    models.StatusCancelled,
		Timestamp: now,
		Note:      body.Reason,
		UpdatedBy: userID,
	}

	_, err = db.OrdersCollection.UpdateOne(
		context.TODO(),
		bson.M{"orderid": orderID},
		bson.M{"$set": set, "$push": bson.M{"statusHistory": entry}},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to cancel order", err)
		return
	}

	m := models.Index{EntityType: "order", EntityId: orderID, ItemId: order.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "order-cancelled", m)
	tracker.BroadcastOrderUpdate(orderID, models.StatusCancelled, body.Reason)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Order cancelled"})
}

func isVendorOwner(userID, vendorID string) bool {
	if userID == "" {
		return false
	}
	count, err := db.VendorsCollection.CountDocuments(context.TODO(), bson.M{
		"vendorid": vendorID,
		"ownerId":  userID,
	})
	return err == nil && count > 0
}
