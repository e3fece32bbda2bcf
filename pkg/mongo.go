package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"homework-bot/internal/models/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func NewMongo(ctx context.Context) (*mongo.Database, error) {
	cfg := config.AppConfig.Mongo

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connection failed: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	log.Printf("🍃 Подключено к MongoDB: %s", cfg.Database)
	return client.Database(cfg.Database), nil
}
