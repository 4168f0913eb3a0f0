package orders

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const feedbackPicDir = "static/feedbackpic"

// POST /api/laundry/orders/:orderid/feedback/photos — multipart upload
func UploadFeedbackPhotos(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")
	userID := utils.GetUserIDFromRequest(r)

	var order models.Order
	err := db.OrdersCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the customer can upload feedback photos")
		return
	}
	if order.Feedback == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Submit feedback before uploading photos")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No photos provided")
		return
	}

	var paths []string
	for _, file := range files {
		if !utils.ValidateImageFileType(w, file) {
			return
		}
		path, err := processFeedbackPhoto(file)
		if err != nil {
			utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to process photo", err)
			return
		}
		paths = append(paths, path)
	}

	_, err = db.OrdersCollection.UpdateOne(
		context.TODO(),
		bson.M{"orderid": orderID},
		bson.M{
			"$push": bson.M{"feedback.photos": bson.M{"$each": paths}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.RespondWithErrorDetail(w, http.StatusInternalServerError, "Failed to save photos", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "photos": paths})
}

func processFeedbackPhoto(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"

	originalPath := filepath.Join(feedbackPicDir, fileName)
	thumbDir := filepath.Join(feedbackPicDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := utils.EnsureDir(feedbackPicDir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/static/feedbackpic/" + fileName, nil
}
