package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo owns the client for the lifetime of the process. Close must be called on shutdown.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and verifies the connection with a ping. opTimeout bounds
// every operation issued through the returned client.
func Connect(ctx context.Context, uri, dbName string, opTimeout time.Duration) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).SetTimeout(opTimeout)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	slog.Info("Connected to MongoDB", "database", dbName)
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Close releases the client's connection pool.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}
	slog.Info("Disconnected from MongoDB")
	return nil
}
