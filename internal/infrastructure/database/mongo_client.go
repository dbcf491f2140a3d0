package database

import (
	"context"
	"log"
	"time"

	"car_marketplace/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo connects and pings. Publishing uses multi-document
// transactions, so the server must be a replica set.
func ConnectMongo(ctx context.Context, cfg config.StoreConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Printf("[database][mongo] connect failed err=%v", err)
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Printf("[database][mongo] ping failed err=%v", err)
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("[database][mongo] connected database=%s", cfg.MongoDatabase)
	return client, nil
}
