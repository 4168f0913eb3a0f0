package vendors

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

// GET /api/vendors
func GetVendors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	skip, limit := utils.ParsePagination(r, 20, 100)
	sort := utils.ParseSort(r.URL.Query().Get("sort"), bson.D{{Key: "rating", Value: -1}}, map[string]bson.D{
		"rating":      {{Key: "rating", Value: -1}},
		"totalOrders": {{Key: "totalOrders", Value: -1}},
		"newest":      {{Key: "createdAt", Value: -1}},
	})

	filter := bson.M{"isActive": true}
	if service := r.URL.Query().Get("service"); service != "" {
		filter["services"] = service
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(sort)
	vendors, err := utils.FindAndDecode[models.Vendor](ctx, db.VendorsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve vendors")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "vendors": vendors})
}

// GET /api/vendors/:vendorid
func GetVendor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	vendorID := ps.ByName("vendorid")

	var vendor models.Vendor
	err := db.VendorsCollection.FindOne(context.TODO(), bson.M{"vendorid": vendorID}).Decode(&vendor)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Vendor not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "vendor": vendor})
}
