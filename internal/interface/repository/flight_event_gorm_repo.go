package repository

import (
	"context"
	"fmt"
	"time"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFlightEventRepository implements the FlightEventRepository interface
type GormFlightEventRepository struct {
	db *gorm.DB
}

// FlightEvents GORM model for database mapping
type FlightEvents struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Registry    string    `gorm:"column:registry;index"`
	Action      string    `gorm:"column:action;index"`
	FlightID    int       `gorm:"column:flight_id;index:idx_flight_events_key"`
	ArrivalTime string    `gorm:"column:arrival_time;index:idx_flight_events_key"`
	FlightName  string    `gorm:"column:flight_name"`
	Status      string    `gorm:"column:status"`
	Delay       int       `gorm:"column:delay"`
	Message     string    `gorm:"column:message"`
	OccurredAt  time.Time `gorm:"column:occurred_at;index"`
	CreatedAt   time.Time
}

// TableName overrides the default table name
func (FlightEvents) TableName() string {
	return "flight_events"
}

// NewGormFlightEventRepository creates a new GORM flight event repository and
// migrates its table
func NewGormFlightEventRepository(db *gorm.DB) (repository.FlightEventRepository, error) {
	if err := db.AutoMigrate(&FlightEvents{}); err != nil {
		return nil, fmt.Errorf("failed to migrate flight_events: %w", err)
	}

	return &GormFlightEventRepository{
		db: db,
	}, nil
}

// Append inserts the event row
func (r *GormFlightEventRepository) Append(ctx context.Context, event *entity.FlightEvent) error {
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}

	// Convert domain entity to GORM model
	row := FlightEvents{
		ID:          id,
		Registry:    event.Registry,
		Action:      string(event.Action),
		FlightID:    event.FlightID,
		ArrivalTime: event.ArrivalTime,
		FlightName:  event.FlightName,
		Status:      event.Status,
		Delay:       event.Delay,
		Message:     event.Message,
		OccurredAt:  event.OccurredAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert flight event: %w", err)
	}
	return nil
}
