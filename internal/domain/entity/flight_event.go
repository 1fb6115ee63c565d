package entity

import (
	"time"
)

// FlightAction names what happened to a registry
type FlightAction string

const (
	ActionInserted     FlightAction = "inserted"
	ActionUpdated      FlightAction = "updated"
	ActionDeleted      FlightAction = "deleted"
	ActionDeleteFailed FlightAction = "delete_failed"
	ActionDisplayed    FlightAction = "displayed"
)

// FlightEvent is a notification emitted after a registry changed or was shown
type FlightEvent struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Registry    string       `bson:"registry" json:"registry"`
	Action      FlightAction `bson:"action" json:"action"`
	FlightID    int          `bson:"flightId" json:"flightId"`
	FlightName  string       `bson:"flightName,omitempty" json:"flightName,omitempty"`
	ArrivalTime string       `bson:"arrivalTime,omitempty" json:"arrivalTime,omitempty"`
	Status      string       `bson:"status,omitempty" json:"status,omitempty"`
	Delay       int          `bson:"delay" json:"delay"`
	Message     string       `bson:"message" json:"message"`
	OccurredAt  time.Time    `bson:"occurredAt" json:"occurredAt"`
}
