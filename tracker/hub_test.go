package tracker

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		OrderID: "order1",
	}

	hub.Register(client)

	update := StatusUpdate{OrderID: "order1", Status: "picked_up", Timestamp: time.Now()}
	hub.Broadcast(update)

	select {
	case got := <-client.Send:
		var decoded StatusUpdate
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if decoded.OrderID != "order1" || decoded.Status != "picked_up" {
			t.Fatalf("unexpected update %+v", decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for update")
	}

	hub.Unregister(client)
}

func TestHubIsolatesOrders(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), OrderID: "orderA"}
	b := &Client{Send: make(chan []byte, 10), OrderID: "orderB"}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(StatusUpdate{OrderID: "orderA", Status: "ready", Timestamp: time.Now()})

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for update on orderA")
	}

	select {
	case msg := <-b.Send:
		t.Fatalf("client for orderB should not receive orderA updates, got %s", msg)
	case <-time.After(100 * time.Millisecond):
	}

	hub.Unregister(a)
	hub.Unregister(b)
}
