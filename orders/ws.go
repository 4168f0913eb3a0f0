package orders

import (
	"context"
	"log"
	"net/http"

	"tastyaana/db"
	"tastyaana/middleware"
	"tastyaana/models"
	"tastyaana/tracker"
	"tastyaana/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OrderUpdates returns the GET /api/laundry/orders/:orderid/updates handler;
// the hub is injected in main to avoid a package-level dependency cycle.
func OrderUpdates(hub *tracker.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		orderID := ps.ByName("orderid")

		var order models.Order
		err := db.OrdersCollection.FindOne(context.TODO(), bson.M{"orderid": orderID}).Decode(&order)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		if !canWatchOrder(r, &order) {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("websocket upgrade failed:", err)
			return
		}

		client := &tracker.Client{
			Send:    make(chan []byte, 16),
			OrderID: orderID,
		}
		hub.Register(client)

		// writer
		go func() {
			defer conn.Close()
			for msg := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// reader; only used to detect disconnect
		go func() {
			defer hub.Unregister(client)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// canWatchOrder authorizes the websocket upgrade. Browsers cannot set an
// Authorization header on upgrade requests, so a ?token= query param is
// accepted as well.
func canWatchOrder(r *http.Request, order *models.Order) bool {
	if canViewOrder(r, order) {
		return true
	}
	claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
	if err != nil {
		return false
	}
	if claims.UserID == order.UserID || claims.Role == "admin" {
		return true
	}
	return isVendorOwner(claims.UserID, order.VendorID)
}
