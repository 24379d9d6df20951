// config/db.go
package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes connection to MongoDB
func ConnectDB() *mongo.Client {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}

	// Only use a local fallback in development
	if mongoURI == "" {
		env := os.Getenv("ENV")
		if env == "development" || env == "dev" {
			mongoURI = "mongodb://localhost:27017"
		} else {
			log.Fatal("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
	}

	log.Printf("Connecting to MongoDB at: %s", maskMongoURI(mongoURI))

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	log.Println("Connected to MongoDB")

	setupCollections(client)

	return client
}

// DatabaseName returns the configured database name
func DatabaseName() string {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "gestion"
	}
	return dbName
}

// GetCollection returns MongoDB collection
func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(DatabaseName()).Collection(collectionName)
}

// setupCollections ensures all necessary collections and indexes exist
func setupCollections(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(DatabaseName())

	collections := []string{
		"users", "clients", "ledger_records", "checks",
		"commission_periods", "settlements", "settlement_details",
		"expenses", "counters",
	}
	for _, collName := range collections {
		db.CreateCollection(ctx, collName)
	}

	// Unique email for users
	userColl := db.Collection("users")
	emailIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := userColl.Indexes().CreateOne(ctx, emailIndexModel); err != nil {
		log.Printf("Error creating email index: %v", err)
	}

	// Unique seq on ledger records - the sync loop pages by this key
	ledgerColl := db.Collection("ledger_records")
	seqIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "seq", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := ledgerColl.Indexes().CreateOne(ctx, seqIndexModel); err != nil {
		log.Printf("Error creating seq index: %v", err)
	}

	// Lookup indexes
	lookupIndexes := map[string]bson.D{
		"ledger_records":     {{Key: "subjectId", Value: 1}, {Key: "date", Value: 1}},
		"clients":            {{Key: "ownerId", Value: 1}},
		"checks":             {{Key: "status", Value: 1}, {Key: "dueDate", Value: 1}},
		"commission_periods": {{Key: "ownerId", Value: 1}, {Key: "from", Value: 1}},
		"settlement_details": {{Key: "settlementId", Value: 1}},
	}
	for collName, keys := range lookupIndexes {
		coll := db.Collection(collName)
		if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: keys}); err != nil {
			log.Printf("Error creating index for %s: %v", collName, err)
		}
	}

	// Owner+date index serves both role scoping and commission ranges
	ownerDateIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}},
	}
	if _, err := ledgerColl.Indexes().CreateOne(ctx, ownerDateIndex); err != nil {
		log.Printf("Error creating ownerId index for ledger_records: %v", err)
	}

	// Unique receipt numbers on settlements
	settlementColl := db.Collection("settlements")
	receiptIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "receiptNumber", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := settlementColl.Indexes().CreateOne(ctx, receiptIndexModel); err != nil {
		log.Printf("Error creating receiptNumber index: %v", err)
	}

	log.Println("Database collections and indexes setup complete")
}

// maskMongoURI masks the password in MongoDB URI for logging
func maskMongoURI(uri string) string {
	if idx := strings.Index(uri, "@"); idx > 0 {
		if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > 0 {
			return uri[:colonIdx+1] + "***" + uri[idx:]
		}
	}
	return uri
}
