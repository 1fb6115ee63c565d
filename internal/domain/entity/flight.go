package entity

import (
	"cmp"
	"encoding/json"
)

// DefaultStatus is the status a flight starts with unless told otherwise
const DefaultStatus = "On time"

// FlightKey is the identity of a flight instance: two flights with the same
// id and arrival time denote the same flight for deduplication and lookup.
type FlightKey struct {
	ID          int
	ArrivalTime string
}

// Flight is one flight entry. Every field except status and delay is fixed
// at construction.
type Flight struct {
	name          string
	id            int
	capacity      int
	arrivalTime   string
	departureTime string
	class         string
	delay         int
	status        string
}

// FlightOption customizes a flight at construction
type FlightOption func(*Flight)

// WithDelay sets the initial delay in minutes
func WithDelay(minutes int) FlightOption {
	return func(f *Flight) {
		f.delay = minutes
	}
}

// WithStatus sets the initial operational status
func WithStatus(status string) FlightOption {
	return func(f *Flight) {
		f.status = status
	}
}

// NewFlight creates a flight. Values are taken verbatim; times follow the
// HHMM convention but are not validated.
func NewFlight(name string, id, capacity int, arrival, departure, class string, opts ...FlightOption) Flight {
	f := Flight{
		name:          name,
		id:            id,
		capacity:      capacity,
		arrivalTime:   arrival,
		departureTime: departure,
		class:         class,
		status:        DefaultStatus,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f Flight) Name() string          { return f.name }
func (f Flight) ID() int               { return f.id }
func (f Flight) Capacity() int         { return f.capacity }
func (f Flight) ArrivalTime() string   { return f.arrivalTime }
func (f Flight) DepartureTime() string { return f.departureTime }
func (f Flight) Class() string         { return f.class }
func (f Flight) Delay() int            { return f.delay }
func (f Flight) Status() string        { return f.status }

// Key returns the identity key of the flight
func (f Flight) Key() FlightKey {
	return FlightKey{ID: f.id, ArrivalTime: f.arrivalTime}
}

// UpdateStatus revises the operational status and delay
func (f *Flight) UpdateStatus(status string, delay int) {
	f.status = status
	f.delay = delay
}

// Matches reports whether the flight has the given identity key fields
func (f Flight) Matches(id int, arrival string) bool {
	return f.id == id && f.arrivalTime == arrival
}

// CompareFlights orders flights by id, then arrival time.
func CompareFlights(a, b Flight) int {
	if c := cmp.Compare(a.id, b.id); c != 0 {
		return c
	}
	return cmp.Compare(a.arrivalTime, b.arrivalTime)
}

// SameIdentity reports whether a and b share the identity key (id, arrival).
func SameIdentity(a, b Flight) bool {
	return a.id == b.id && a.arrivalTime == b.arrivalTime
}

// SameRecord is full equality: id, name and arrival time must all match.
// Capacity, departure, class, status and delay are ignored.
func SameRecord(a, b Flight) bool {
	return a.id == b.id && a.name == b.name && a.arrivalTime == b.arrivalTime
}

// FlightView is the wire form of a flight
type FlightView struct {
	Name          string `json:"name" toml:"name"`
	ID            int    `json:"id" toml:"id"`
	Capacity      int    `json:"capacity" toml:"capacity"`
	ArrivalTime   string `json:"arrival" toml:"arrival"`
	DepartureTime string `json:"departure" toml:"departure"`
	Class         string `json:"class" toml:"class"`
	Delay         int    `json:"delay" toml:"delay"`
	Status        string `json:"status" toml:"status"`
}

// View returns the wire form of the flight
func (f Flight) View() FlightView {
	return FlightView{
		Name:          f.name,
		ID:            f.id,
		Capacity:      f.capacity,
		ArrivalTime:   f.arrivalTime,
		DepartureTime: f.departureTime,
		Class:         f.class,
		Delay:         f.delay,
		Status:        f.status,
	}
}

// Flight builds a flight from its wire form. An empty status becomes
// DefaultStatus.
func (v FlightView) Flight() Flight {
	status := v.Status
	if status == "" {
		status = DefaultStatus
	}
	return NewFlight(v.Name, v.ID, v.Capacity, v.ArrivalTime, v.DepartureTime, v.Class,
		WithDelay(v.Delay), WithStatus(status))
}

// MarshalJSON encodes the flight through its view
func (f Flight) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.View())
}

// UnmarshalJSON decodes the flight from its view
func (f *Flight) UnmarshalJSON(data []byte) error {
	var v FlightView
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = v.Flight()
	return nil
}
