package repository

import (
	"context"
	"fmt"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoFlightEventRepository implements FlightEventRepository
type MongoFlightEventRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightEventRepository creates a new flight event repository
func NewMongoFlightEventRepository(ctx context.Context, db *mongo.Database) (repository.FlightEventRepository, error) {
	collection := db.Collection("flight_events")

	// Lookup by identity key
	keyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "flightId", Value: 1},
			{Key: "arrivalTime", Value: 1},
		},
	}

	// Newest first for the action history
	occurredAtIndex := mongo.IndexModel{
		Keys: bson.M{"occurredAt": -1},
	}

	if _, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{keyIndex, occurredAtIndex}); err != nil {
		return nil, fmt.Errorf("failed to create flight event indexes: %w", err)
	}

	return &MongoFlightEventRepository{
		collection: collection,
	}, nil
}

// Append inserts the event document
func (r *MongoFlightEventRepository) Append(ctx context.Context, event *entity.FlightEvent) error {
	doc := *event
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert flight event: %w", err)
	}
	return nil
}
