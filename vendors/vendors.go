package vendors

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/mq"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/vendors — admin only
func CreateVendor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	var vendor models.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid vendor data")
		return
	}
	if vendor.Name == "" || len(vendor.Services) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Vendor name and services are required")
		return
	}

	vendor.VendorID = utils.GetUUID()
	vendor.IsActive = true
	vendor.TotalOrders = 0
	vendor.ActiveSubscriptions = 0
	vendor.Rating = 0
	vendor.TotalReviews = 0
	vendor.CreatedAt = time.Now()
	vendor.UpdatedAt = vendor.CreatedAt

	applyServiceDefaults(&vendor)

	for i := range vendor.Plans {
		if vendor.Plans[i].PlanID == "" {
			vendor.Plans[i].PlanID = utils.GetUUID()
		}
	}

	if _, err := db.VendorsCollection.InsertOne(context.TODO(), vendor); err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to create vendor", err)
		return
	}

	m := models.Index{EntityType: "vendor", EntityId: vendor.VendorID, Method: "POST"}
	go mq.Emit(r.Context(), "vendor-created", m)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "vendor": vendor})
}

// PUT /api/vendors/:vendorid — owner or admin
func EditVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	vendorID := ps.ByName("vendorid")

	var vendor models.Vendor
	err := db.VendorsCollection.FindOne(context.TODO(), bson.M{"vendorid": vendorID}).Decode(&vendor)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Vendor not found")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if vendor.OwnerID != userID && !utils.IsAdmin(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	var updated map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update data")
		return
	}

	// Counters and identity are never writable through this endpoint.
	for _, k := range []string{"vendorid", "_id", "totalOrders", "activeSubscriptions", "rating", "totalReviews", "ownerId"} {
		delete(updated, k)
	}
	updated["updatedAt"] = time.Now()

	_, err = db.VendorsCollection.UpdateOne(
		context.TODO(),
		bson.M{"vendorid": vendorID},
		bson.M{"$set": updated},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to update vendor", err)
		return
	}

	m := models.Index{EntityType: "vendor", EntityId: vendorID, Method: "PUT"}
	go mq.Emit(r.Context(), "vendor-updated", m)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

// applyServiceDefaults fills in the turnaround windows the pricing and
// delivery estimation code relies on.
func applyServiceDefaults(v *models.Vendor) {
	if v.QuickService.MaxTurnaroundHrs <= 0 {
		v.QuickService.MaxTurnaroundHrs = 8
	}
	if v.ScheduledService.TurnaroundHrs <= 0 {
		v.ScheduledService.TurnaroundHrs = 48
	}
}
