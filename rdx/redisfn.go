package rdx

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"tastyaana/db"
	"tastyaana/globals"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

// --- Token store helpers ---

func RdxHset(hash, field, value string) error {
	return Conn.HSet(globals.Ctx, hash, field, value).Err()
}

func RdxHget(hash, field string) (string, error) {
	return Conn.HGet(globals.Ctx, hash, field).Result()
}

func RdxHdel(hash, field string) error {
	return Conn.HDel(globals.Ctx, hash, field).Err()
}

func RdxSet(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

// StatIncrement is a vendor counter adjustment that failed on the primary
// path and was queued for retry.
type StatIncrement struct {
	VendorID string `json:"vendorId"`
	Field    string `json:"field"`
	Delta    int    `json:"delta"`
}

const statRetryKey = "vendorstats:retry"

// QueueStatRetry pushes a failed vendor counter update onto the retry list.
// Errors here are logged only; the counters are best-effort by design.
func QueueStatRetry(inc StatIncrement) {
	data, err := json.Marshal(inc)
	if err != nil {
		log.Println("stat retry marshal error:", err)
		return
	}
	if err := Conn.RPush(globals.Ctx, statRetryKey, data).Err(); err != nil {
		log.Println("stat retry push error:", err)
	}
}

// FlushStatRetries drains queued vendor counter updates into MongoDB in bulk.
func FlushStatRetries() {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		for {
			entry, err := Conn.LPop(globals.Ctx, statRetryKey).Result()
			if err == redis.Nil {
				break
			}
			if err != nil {
				log.Println("Redis LPop error:", err)
				break
			}

			var inc StatIncrement
			if err := json.Unmarshal([]byte(entry), &inc); err != nil {
				log.Println("stat retry unmarshal error:", err)
				continue
			}

			filter := bson.M{"vendorid": inc.VendorID}
			update := bson.M{"$inc": bson.M{inc.Field: inc.Delta}}
			if _, err := db.VendorsCollection.UpdateOne(globals.Ctx, filter, update); err != nil {
				log.Println("MongoDB stat retry error for", inc.VendorID, ":", err)
				// put it back and try again next tick
				QueueStatRetry(inc)
				break
			}
		}
	}
}
