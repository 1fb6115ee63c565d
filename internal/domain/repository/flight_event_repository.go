package repository

import (
	"context"

	"flightdesk-service/internal/domain/entity"
)

// FlightEventRepository defines the interface for flight event sinks. Sinks
// are append-only.
type FlightEventRepository interface {
	Append(ctx context.Context, event *entity.FlightEvent) error
}
