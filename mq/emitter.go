package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tastyaana/models"
	"tastyaana/rdx"
)

const eventsChannel = "order-events"

// Notify is a placeholder for broadcasting events without queueing.
func Notify(eventName string, content models.Index) error {
	fmt.Println(eventName, "Notified", content)
	return nil
}

// Emit publishes domain events to Redis for background consumers.
func Emit(ctx context.Context, eventName string, content models.Index) {
	content.Method = eventName

	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event to Redis: %v", err)
		return
	}
}

// StartEventWorker consumes published events and maintains per-vendor daily
// activity counters in Redis. Counter drift is acceptable; the document
// store remains the source of truth.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for order events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[EventWorker] Failed to parse event: %v", err)
			continue
		}

		if event.Method != "order-created" {
			continue
		}

		key := fmt.Sprintf("orders:daily:%s:%s", event.ItemId, time.Now().Format("2006-01-02"))
		if err := rdx.Conn.Incr(ctx, key).Err(); err != nil {
			log.Printf("[EventWorker] Failed to bump daily counter: %v", err)
			continue
		}
		rdx.Conn.Expire(ctx, key, 48*time.Hour)
	}
}
