package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/registry"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
)

const (
	PrimaryRegistry   = "primary"
	SecondaryRegistry = "secondary"
)

var (
	ErrRegistryNotFound    = errors.New("registry not found")
	ErrUnknownSetOperation = errors.New("unknown set operation")
)

// SetOperation names a binary operation between two registries
type SetOperation string

const (
	OpUnion               SetOperation = "union"
	OpIntersection        SetOperation = "intersection"
	OpDifference          SetOperation = "difference"
	OpSymmetricDifference SetOperation = "symmetric_difference"
)

// SetOperations lists every supported operation in display order
var SetOperations = []SetOperation{OpUnion, OpIntersection, OpDifference, OpSymmetricDifference}

// ParseSetOperation accepts the operation names plus "symdiff" and
// dashed spellings
func ParseSetOperation(s string) (SetOperation, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch normalized {
	case "union":
		return OpUnion, nil
	case "intersection":
		return OpIntersection, nil
	case "difference":
		return OpDifference, nil
	case "symmetric_difference", "symdiff":
		return OpSymmetricDifference, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSetOperation, s)
}

// guardedRegistry queues the events its registry emits while mu is held.
// They are handed to the desk notifier after mu is released so a slow sink
// never blocks readers or writers of the registry.
type guardedRegistry struct {
	mu      sync.RWMutex
	reg     *registry.Registry
	pending []entity.FlightEvent
}

// takePending must be called with mu held for writing
func (g *guardedRegistry) takePending() []entity.FlightEvent {
	events := g.pending
	g.pending = nil
	return events
}

// FlightDesk hosts named registries for concurrent callers. Each registry has
// its own lock; the registries themselves stay single-threaded.
type FlightDesk struct {
	registries map[string]*guardedRegistry
	notifier   registry.Notifier
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewFlightDesk creates one empty registry per name, each wired to notifier
func NewFlightDesk(names []string, notifier registry.Notifier, logger logger.Logger, m *metrics.Metrics) *FlightDesk {
	desk := &FlightDesk{
		registries: make(map[string]*guardedRegistry, len(names)),
		notifier:   notifier,
		logger:     logger,
		metrics:    m,
	}

	for _, name := range names {
		g := &guardedRegistry{}
		opts := []registry.Option{registry.WithName(name)}
		if notifier != nil {
			opts = append(opts, registry.WithNotifier(registry.NotifierFunc(func(event entity.FlightEvent) {
				g.pending = append(g.pending, event)
			})))
		}
		g.reg = registry.New(opts...)
		desk.registries[name] = g
	}

	return desk
}

// Names returns the registry names in sorted order
func (d *FlightDesk) Names() []string {
	names := make([]string, 0, len(d.registries))
	for name := range d.registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Insert adds a flight to the named registry
func (d *FlightDesk) Insert(name string, f entity.Flight) error {
	g, err := d.lookup(name)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.reg.Insert(f)
	count := g.reg.Count()
	events := g.takePending()
	g.mu.Unlock()
	d.publish(events)

	d.logger.Info("Flight inserted", "registry", name, "flightID", f.ID(), "arrival", f.ArrivalTime())
	d.observe("insert", "ok")
	d.setSize(name, count)
	return nil
}

// Update revises status and delay of every matching flight. The bool is
// false when nothing matched.
func (d *FlightDesk) Update(name string, id int, arrival, status string, delay int) (bool, error) {
	g, err := d.lookup(name)
	if err != nil {
		return false, err
	}

	g.mu.Lock()
	updated := g.reg.Update(id, arrival, status, delay)
	events := g.takePending()
	g.mu.Unlock()
	d.publish(events)

	if !updated {
		d.logger.Warn("Flight not found for update", "registry", name, "flightID", id, "arrival", arrival)
		d.observe("update", "not_found")
		return false, nil
	}

	d.logger.Info("Flight updated", "registry", name, "flightID", id, "arrival", arrival, "status", status, "delay", delay)
	d.observe("update", "ok")
	return true, nil
}

// Delete removes every matching flight. The bool is false when nothing
// matched.
func (d *FlightDesk) Delete(name string, id int, arrival string) (bool, error) {
	g, err := d.lookup(name)
	if err != nil {
		return false, err
	}

	g.mu.Lock()
	deleted := g.reg.Delete(id, arrival)
	count := g.reg.Count()
	events := g.takePending()
	g.mu.Unlock()
	d.publish(events)

	if !deleted {
		d.logger.Warn("Flight not found for delete", "registry", name, "flightID", id, "arrival", arrival)
		d.observe("delete", "not_found")
		return false, nil
	}

	d.logger.Info("Flight deleted", "registry", name, "flightID", id, "arrival", arrival)
	d.observe("delete", "ok")
	d.setSize(name, count)
	return true, nil
}

// Find looks a flight up by identity key
func (d *FlightDesk) Find(name string, id int, arrival string) (entity.Flight, bool, error) {
	g, err := d.lookup(name)
	if err != nil {
		return entity.Flight{}, false, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	f, ok := g.reg.Find(id, arrival)
	return f, ok, nil
}

// Deduplicate collapses duplicates in the named registry and returns how many
// flights were dropped
func (d *FlightDesk) Deduplicate(name string) (int, error) {
	g, err := d.lookup(name)
	if err != nil {
		return 0, err
	}

	g.mu.Lock()
	removed := g.reg.Deduplicate()
	count := g.reg.Count()
	events := g.takePending()
	g.mu.Unlock()
	d.publish(events)

	d.logger.Info("Registry deduplicated", "registry", name, "removed", removed)
	d.observe("deduplicate", "ok")
	d.setSize(name, count)
	return removed, nil
}

// Compare applies op to the left and right registries. Neither is modified.
func (d *FlightDesk) Compare(op SetOperation, left, right string) ([]entity.Flight, error) {
	l, err := d.lookup(left)
	if err != nil {
		return nil, err
	}
	r, err := d.lookup(right)
	if err != nil {
		return nil, err
	}

	var apply func(a, b *registry.Registry) []entity.Flight
	switch op {
	case OpUnion:
		apply = (*registry.Registry).Union
	case OpIntersection:
		apply = (*registry.Registry).Intersection
	case OpDifference:
		apply = (*registry.Registry).Difference
	case OpSymmetricDifference:
		apply = (*registry.Registry).SymmetricDifference
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSetOperation, op)
	}

	start := time.Now()
	unlock := d.readLockPair(left, l, right, r)
	result := apply(l.reg, r.reg)
	unlock()

	if d.metrics != nil {
		d.metrics.SetOperationDuration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
	}
	d.observe(string(op), "ok")
	d.logger.Debug("Set operation computed", "operation", op, "left", left, "right", right, "size", len(result))
	return result, nil
}

// LongestDelay returns the most delayed flight; ok is false when the
// registry is empty
func (d *FlightDesk) LongestDelay(name string) (entity.Flight, bool, error) {
	g, err := d.lookup(name)
	if err != nil {
		return entity.Flight{}, false, err
	}

	g.mu.RLock()
	f, ok := g.reg.LongestDelay()
	g.mu.RUnlock()

	if !ok {
		d.observe("longest_delay", "empty")
		return entity.Flight{}, false, nil
	}
	d.observe("longest_delay", "ok")
	return f, true, nil
}

// Count returns the number of flights in the named registry
func (d *FlightDesk) Count(name string) (int, error) {
	g, err := d.lookup(name)
	if err != nil {
		return 0, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reg.Count(), nil
}

// IsEmpty reports whether the named registry holds no flights
func (d *FlightDesk) IsEmpty(name string) (bool, error) {
	g, err := d.lookup(name)
	if err != nil {
		return false, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reg.IsEmpty(), nil
}

// Flights returns a snapshot of the named registry
func (d *FlightDesk) Flights(name string) ([]entity.Flight, error) {
	g, err := d.lookup(name)
	if err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reg.Flights(), nil
}

func (d *FlightDesk) lookup(name string) (*guardedRegistry, error) {
	g, ok := d.registries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRegistryNotFound, name)
	}
	return g, nil
}

// readLockPair read-locks both registries in name order so concurrent
// compares and writers cannot deadlock.
func (d *FlightDesk) readLockPair(leftName string, left *guardedRegistry, rightName string, right *guardedRegistry) func() {
	if left == right {
		left.mu.RLock()
		return left.mu.RUnlock
	}

	first, second := left, right
	if rightName < leftName {
		first, second = right, left
	}
	first.mu.RLock()
	second.mu.RLock()
	return func() {
		second.mu.RUnlock()
		first.mu.RUnlock()
	}
}

// publish runs outside the registry lock
func (d *FlightDesk) publish(events []entity.FlightEvent) {
	for _, event := range events {
		d.notify(event)
	}
}

func (d *FlightDesk) notify(event entity.FlightEvent) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Flight event notifier panicked", "registry", event.Registry, "action", event.Action, "panic", r)
		}
	}()
	d.notifier.Notify(event)
}

func (d *FlightDesk) observe(operation, outcome string) {
	if d.metrics != nil {
		d.metrics.RegistryOperations.WithLabelValues(operation, outcome).Inc()
	}
}

func (d *FlightDesk) setSize(name string, count int) {
	if d.metrics != nil {
		d.metrics.RegistrySize.WithLabelValues(name).Set(float64(count))
	}
}
