package tracker

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// StatusUpdate is the payload broadcast to clients watching an order.
type StatusUpdate struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Client is one websocket subscriber watching a single order.
type Client struct {
	Send    chan []byte
	OrderID string
}

type broadcastMsg struct {
	OrderID string
	Data    []byte
}

// Hub fans order status updates out to the clients watching each order.
type Hub struct {
	orders     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		orders:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 64),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for orderID, conns := range h.orders {
				for c := range conns {
					close(c.Send)
				}
				delete(h.orders, orderID)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.orders[c.OrderID] == nil {
				h.orders[c.OrderID] = make(map[*Client]bool)
			}
			h.orders[c.OrderID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.orders[c.OrderID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.orders[m.OrderID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.orders[m.OrderID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) Register(c *Client) {
	h.register <- c
}

func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Broadcast sends a status update to everyone watching the order. Drops the
// update if the hub's buffer is full rather than blocking the request path.
func (h *Hub) Broadcast(update StatusUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("tracker marshal error:", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{OrderID: update.OrderID, Data: data}:
	default:
		log.Printf("Warning: tracker channel full. Dropping update for order %s.", update.OrderID)
	}
}

var defaultHub *Hub

// SetHub installs the process-wide hub used by order handlers.
func SetHub(h *Hub) {
	defaultHub = h
}

// BroadcastOrderUpdate publishes a transition on the process-wide hub, if
// one is installed.
func BroadcastOrderUpdate(orderID, status, note string) {
	if defaultHub == nil {
		return
	}
	defaultHub.Broadcast(StatusUpdate{
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		Timestamp: time.Now(),
	})
}
