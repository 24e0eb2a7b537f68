package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinicdesk/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// MongoClient is the global MongoDB client instance.
	MongoClient *mongo.Client
	// FirestoreClient is set instead of MongoClient when STORE_DRIVER=firestore.
	FirestoreClient *firestore.Client
)

// Collection names shared by both store drivers.
const (
	DoctorsCollection      = "Doctor"
	AppointmentsCollection = "Appointment"
	UsersCollection        = "Users"
)

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := ConnectMongo(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	MongoClient = client
	log.Println("Connected to MongoDB successfully!")
}

// ConnectMongo dials and pings a MongoDB deployment.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Mongo returns the application database on the global client.
func Mongo() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// InitFirestore opens the Firestore client from an initialised Firebase app.
func InitFirestore(ctx context.Context, app *firebase.App) {
	client, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Firestore client: %v", err)
	}
	FirestoreClient = client
	log.Println("Connected to Firestore successfully!")
}

// Close releases whichever store client was opened.
func Close(ctx context.Context) {
	if MongoClient != nil {
		if err := MongoClient.Disconnect(ctx); err != nil {
			log.Printf("failed to disconnect MongoDB: %v", err)
		}
	}
	if FirestoreClient != nil {
		if err := FirestoreClient.Close(); err != nil {
			log.Printf("failed to close Firestore: %v", err)
		}
	}
}
