package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisFlightEventRepository appends JSON events to a Redis list
type RedisFlightEventRepository struct {
	client redis.Cmdable
	key    string
}

// NewRedisFlightEventRepository creates a repository pushing to key
func NewRedisFlightEventRepository(client redis.Cmdable, key string) repository.FlightEventRepository {
	return &RedisFlightEventRepository{
		client: client,
		key:    key,
	}
}

// Append pushes the event to the tail of the list
func (r *RedisFlightEventRepository) Append(ctx context.Context, event *entity.FlightEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal flight event: %w", err)
	}

	if err := r.client.RPush(ctx, r.key, body).Err(); err != nil {
		return fmt.Errorf("failed to push flight event to %s: %w", r.key, err)
	}
	return nil
}
