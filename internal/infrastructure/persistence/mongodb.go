package persistence

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	mongoAppName        = "flightdesk"
	mongoConnectTimeout = 10 * time.Second
)

// NewMongoDatabase connects to MongoDB, checks the primary is reachable and
// returns the named database for the flight event store.
func NewMongoDatabase(ctx context.Context, uri, database, username, password string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoClientOptions(uri, username, password))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// mongoClientOptions applies credentials only when both parts are set, so a
// URI carrying its own credentials is left untouched.
func mongoClientOptions(uri, username, password string) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName(mongoAppName).
		SetServerSelectionTimeout(mongoConnectTimeout)

	if username != "" && password != "" {
		opts.SetAuth(options.Credential{
			Username: username,
			Password: password,
		})
	}
	return opts
}
