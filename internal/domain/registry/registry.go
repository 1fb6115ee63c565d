// Package registry holds the in-memory flight registry and the set algebra
// between two registries.
//
// Two comparisons are in play and each operation uses exactly one of them:
//
//	operation                 comparison
//	Insert, Deduplicate       entity.CompareFlights (sort), entity.SameIdentity (collapse)
//	Update, Delete, Find      identity key (id, arrival)
//	Union                     entity.SameIdentity
//	Intersection              entity.SameIdentity (membership), entity.SameRecord (collapse)
//	Difference, SymDiff       entity.SameRecord
//
// A Registry is not safe for concurrent use.
package registry

import (
	"fmt"
	"slices"
	"time"

	"flightdesk-service/internal/domain/entity"
)

// Notifier receives a flight event after a registry operation. Notifications
// are fire-and-forget: the registry has already changed when Notify runs.
type Notifier interface {
	Notify(event entity.FlightEvent)
}

// NotifierFunc adapts a function to a Notifier
type NotifierFunc func(event entity.FlightEvent)

// Notify calls fn(event)
func (fn NotifierFunc) Notify(event entity.FlightEvent) {
	fn(event)
}

// Option configures a Registry
type Option func(*Registry)

// WithName sets the name carried by emitted events
func WithName(name string) Option {
	return func(r *Registry) {
		r.name = name
	}
}

// WithNotifier sets the sink for flight events
func WithNotifier(n Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// WithClock overrides the event timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// Registry is an ordered collection of flights, sorted by id then arrival
// time after every Insert and Deduplicate.
type Registry struct {
	name     string
	flights  []entity.Flight
	notifier Notifier
	now      func() time.Time
}

// New creates an empty registry
func New(opts ...Option) *Registry {
	r := &Registry{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the registry name
func (r *Registry) Name() string {
	return r.name
}

// Insert adds a flight and re-sorts. Duplicates are kept until Deduplicate.
func (r *Registry) Insert(f entity.Flight) {
	r.flights = append(r.flights, f)
	slices.SortStableFunc(r.flights, entity.CompareFlights)

	r.notify(eventFor(entity.ActionInserted, f,
		fmt.Sprintf("Flight inserted: %s with ID %d", f.Name(), f.ID())))
}

// Update sets status and delay on every flight matching id and arrival.
// It reports whether anything matched. All matches are updated before any
// event is emitted.
func (r *Registry) Update(id int, arrival, status string, delay int) bool {
	var matched []int
	for i := range r.flights {
		if r.flights[i].Matches(id, arrival) {
			r.flights[i].UpdateStatus(status, delay)
			matched = append(matched, i)
		}
	}

	message := fmt.Sprintf("Flight updated: ID %d, Arrival Time %s to %s with delay %d mins", id, arrival, status, delay)
	for _, i := range matched {
		r.notify(eventFor(entity.ActionUpdated, r.flights[i], message))
	}
	return len(matched) > 0
}

// Delete removes every flight matching id and arrival. It reports whether
// anything was removed.
func (r *Registry) Delete(id int, arrival string) bool {
	before := len(r.flights)
	r.flights = slices.DeleteFunc(r.flights, func(f entity.Flight) bool {
		return f.Matches(id, arrival)
	})

	if len(r.flights) == before {
		r.notify(entity.FlightEvent{
			Action:      entity.ActionDeleteFailed,
			FlightID:    id,
			ArrivalTime: arrival,
			Message:     fmt.Sprintf("Flight deletion failed: ID %d, Arrival Time %s not found", id, arrival),
		})
		return false
	}

	r.notify(entity.FlightEvent{
		Action:      entity.ActionDeleted,
		FlightID:    id,
		ArrivalTime: arrival,
		Message:     fmt.Sprintf("Flight deleted: ID %d, Arrival Time %s", id, arrival),
	})
	return true
}

// Find returns the first flight in storage order matching id and arrival
func (r *Registry) Find(id int, arrival string) (entity.Flight, bool) {
	i := slices.IndexFunc(r.flights, func(f entity.Flight) bool {
		return f.Matches(id, arrival)
	})
	if i < 0 {
		return entity.Flight{}, false
	}
	return r.flights[i], true
}

// Deduplicate sorts and collapses adjacent flights sharing an identity key,
// keeping the first of each run. It returns how many flights were dropped.
func (r *Registry) Deduplicate() int {
	before := len(r.flights)
	r.flights = collapse(r.flights, entity.SameIdentity)
	return before - len(r.flights)
}

// Union returns the flights of r and other, one per identity key. For keys
// present in both, the flight from r wins. Neither registry is modified.
func (r *Registry) Union(other *Registry) []entity.Flight {
	combined := make([]entity.Flight, 0, len(r.flights)+len(other.flights))
	combined = append(combined, r.flights...)
	combined = append(combined, other.flights...)
	return collapse(combined, entity.SameIdentity)
}

// Intersection returns the flights of r whose identity key also appears in
// other, sorted, with adjacent fully-equal flights collapsed.
func (r *Registry) Intersection(other *Registry) []entity.Flight {
	result := make([]entity.Flight, 0)
	for _, f := range r.flights {
		if other.containsFunc(f, entity.SameIdentity) {
			result = append(result, f)
		}
	}
	return collapse(result, entity.SameRecord)
}

// Difference returns the flights of r with no fully-equal flight in other,
// in the storage order of r.
func (r *Registry) Difference(other *Registry) []entity.Flight {
	result := make([]entity.Flight, 0)
	for _, f := range r.flights {
		if !other.containsFunc(f, entity.SameRecord) {
			result = append(result, f)
		}
	}
	return result
}

// SymmetricDifference is Difference(other) followed by other.Difference(r).
// No further deduplication is applied.
func (r *Registry) SymmetricDifference(other *Registry) []entity.Flight {
	return append(r.Difference(other), other.Difference(r)...)
}

// LongestDelay returns the flight with the greatest delay, the first one in
// storage order on ties. ok is false when the registry is empty.
func (r *Registry) LongestDelay() (f entity.Flight, ok bool) {
	for i, candidate := range r.flights {
		if i == 0 || candidate.Delay() > f.Delay() {
			f = candidate
			ok = true
		}
	}
	return f, ok
}

// Count returns the number of flights held
func (r *Registry) Count() int {
	return len(r.flights)
}

// IsEmpty reports whether the registry holds no flights
func (r *Registry) IsEmpty() bool {
	return len(r.flights) == 0
}

// Flights returns a copy of the stored flights in storage order
func (r *Registry) Flights() []entity.Flight {
	return append(make([]entity.Flight, 0, len(r.flights)), r.flights...)
}

func (r *Registry) containsFunc(f entity.Flight, eq func(a, b entity.Flight) bool) bool {
	return slices.ContainsFunc(r.flights, func(o entity.Flight) bool {
		return eq(f, o)
	})
}

// notify delivers event and swallows a notifier panic; the operation that
// produced the event has already completed.
func (r *Registry) notify(event entity.FlightEvent) {
	if r.notifier == nil {
		return
	}
	defer func() {
		_ = recover()
	}()

	event.Registry = r.name
	event.OccurredAt = r.now()
	r.notifier.Notify(event)
}

// collapse stable-sorts flights and keeps the first of each adjacent run
// that eq considers equal.
func collapse(flights []entity.Flight, eq func(a, b entity.Flight) bool) []entity.Flight {
	slices.SortStableFunc(flights, entity.CompareFlights)
	return slices.CompactFunc(flights, eq)
}

func eventFor(action entity.FlightAction, f entity.Flight, message string) entity.FlightEvent {
	return entity.FlightEvent{
		Action:      action,
		FlightID:    f.ID(),
		FlightName:  f.Name(),
		ArrivalTime: f.ArrivalTime(),
		Status:      f.Status(),
		Delay:       f.Delay(),
		Message:     message,
	}
}
