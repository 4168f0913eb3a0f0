package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/mq"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/laundry/orders/:orderid/feedback — customer only, delivered only
func SubmitFeedback(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	userID := utils.GetUserIDFromRequest(r)

	var body struct {
		Rating int      `json:"rating"`
		Review string   `json:"review"`
		Photos []string `json:"photos"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Rating < 1 || body.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}

	var order models.Order
	err := db.OrdersCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the customer can leave feedback")
		return
	}
	if order.Status != models.StatusDelivered {
		utils.RespondWithError(w, http.StatusBadRequest, "Feedback is only accepted on delivered orders")
		return
	}
	if order.Feedback != nil {
		utils.RespondWithError(w, http.StatusConflict, "Feedback already submitted for this order")
		return
	}

	feedback := models.OrderFeedback{
		Rating:      body.Rating,
		Review:      body.Review,
		Photos:      body.Photos,
		SubmittedAt: time.Now(),
	}

	_, err = db.OrdersCollection.UpdateOne(
		context.TODO(),
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"feedback": &feedback, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to save feedback", err)
		return
	}

	updateVendorRating(order.VendorID, body.Rating)

	m := models.Index{EntityType: "order", EntityId: orderID, ItemId: order.VendorID, ItemType: "vendor"}
	go mq.Emit(r.Context(), "order-feedback", m)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "feedback": feedback})
}

// NextRating folds a new rating into a running weighted average.
func NextRating(current float64, totalReviews, rating int) float64 {
	return utils.RoundMoney((current*float64(totalReviews) + float64(rating)) / float64(totalReviews+1))
}

// updateVendorRating recomputes the vendor's running average. A failed
// update is logged, not surfaced; the feedback itself has already been
// recorded.
func updateVendorRating(vendorID string, rating int) {
	var vendor models.Vendor
	err := db.VendorsCollection.FindOne(context.TODO(), bson.M{"vendorid": vendorID}).Decode(&vendor)
	if err != nil {
		log.Printf("vendor lookup failed for rating update %s: %v", vendorID, err)
		return
	}

	_, err = db.VendorsCollection.UpdateOne(
		context.TODO(),
		bson.M{"vendorid": vendorID},
		bson.M{"$set": bson.M{
			"rating":       NextRating(vendor.Rating, vendor.TotalReviews, rating),
			"totalReviews": vendor.TotalReviews + 1,
		}},
	)
	if err != nil {
		log.Printf("vendor rating update failed for %s: %v", vendorID, err)
	}
}
