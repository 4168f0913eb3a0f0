package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"tastyaana/db"
	"tastyaana/models"
	"tastyaana/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func invoiceSecret() []byte {
	if s := os.Getenv("INVOICE_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("tastyaana_invoice_secret")
}

// InvoiceQRPayload returns orderId|orderNumber|timestamp|signature so a
// scanned invoice can be verified against tampering.
func InvoiceQRPayload(orderID, orderNumber string) string {
	data := fmt.Sprintf("%s|%s|%d", orderID, orderNumber, time.Now().Unix())
	h := hmac.New(sha256.New, invoiceSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/laundry/orders/:orderid/invoice — PDF download
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

	qrPNG, err := qrcode.Encode(InvoiceQRPayload(order.OrderID, order.OrderNumber), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Tastyaana Invoice")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order: %s", order.OrderNumber))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(70, 8, "Item")
	pdf.Cell(40, 8, "Service")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(30, 8, "Amount")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.Cell(70, 7, item.Type)
		pdf.Cell(40, 7, item.ServiceType)
		pdf.Cell(25, 7, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(30, 7, fmt.Sprintf("%.2f", item.TotalPrice))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %.2f", order.Pricing.Subtotal))
	pdf.Ln(7)
	if order.Pricing.ExpressFee > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Express fee: %.2f", order.Pricing.ExpressFee))
		pdf.Ln(7)
	}
	if order.Pricing.Discount > 0 {
		pdf.Cell(0, 8, fmt.Sprintf("Discount: -%.2f", order.Pricing.Discount))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", order.Pricing.Total))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
