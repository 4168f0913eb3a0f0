package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	VendorsCollection       *mongo.Collection
	OrdersCollection        *mongo.Collection
	SubscriptionsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("tastyaana")
	UserCollection = database.Collection("users")
	VendorsCollection = database.Collection("vendors")
	OrdersCollection = database.Collection("orders")
	SubscriptionsCollection = database.Collection("subscriptions")
}

// EnsureIndexes creates the indexes the handlers rely on. Called once at
// startup, not from init, so importing this package stays cheap.
func EnsureIndexes() {
	// orderNumber uniqueness is the only backstop against the timestamp
	// fallback colliding with a counter-derived number.
	_, err := OrdersCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "orderNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("orders index:", err)
	}

	_, err = SubscriptionsCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "vendorId", Value: 1}, {Key: "status", Value: 1}},
	})
	if err != nil {
		log.Println("subscriptions index:", err)
	}

	_, err = UserCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("users index:", err)
	}
}
