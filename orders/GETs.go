package orders

import (
	"context"
	"net/http"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/laundry/orders — the caller's orders, or a vendor's when they own it
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := r.URL.Query()
	filter := bson.M{"userId": userID}

	if vendorID := q.Get("vendorId"); vendorID != "" {
		if !isVendorOwner(userID, vendorID) && !utils.IsAdmin(r) {
			utils.RespondWithError(w, http.StatusForbidden, "Not your vendor")
			return
		}
		filter = bson.M{"vendorId": vendorID}
	}
	if status := q.Get("status"); status != "" {
		filter["status"] = status
	}

	skip, limit := utils.ParsePagination(r, 10, 100)
	sort := utils.ParseSort(q.Get("sortBy"), bson.D{{Key: "createdAt", Value: -1}}, map[string]bson.D{
		"createdAt":  {{Key: "createdAt", Value: -1}},
		"pickupDate": {{Key: "schedule.pickupDate", Value: 1}},
		"total":      {{Key: "pricing.total", Value: -1}},
	})

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	orders, err := utils.FindAndDecode[models.Order](ctx, db.OrdersCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": orders})
}

// GET /api/laundry/orders/:orderid
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var order models.Order
	err := db.OrdersCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !canViewOrder(r, &order) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": order})
}

// GET /api/laundry/orders/:orderid/track — status/schedule snapshot
func TrackOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var order models.Order
	err := db.OrdersCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if !canViewOrder(r, &order) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":       true,
		"orderNumber":   order.OrderNumber,
		"status":        order.Status,
		"statusHistory": order.StatusHistory,
		"schedule":      order.Schedule,
	})
}

// canViewOrder allows the customer, the owning vendor, or an admin.
func canViewOrder(r *http.Request, order *models.Order) bool {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		return false
	}
	if order.UserID == userID || utils.IsAdmin(r) {
		return true
	}
	return isVendorOwner(userID, order.VendorID)
}
