package usecase

import (
	"context"
	"time"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/registry"
	"flightdesk-service/internal/domain/repository"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"

	"github.com/google/uuid"
)

type namedSink struct {
	name string
	repo repository.FlightEventRepository
}

// EventDispatcher fans flight events out to every registered sink. A failing
// sink is logged and counted; it never fails the registry operation.
type EventDispatcher struct {
	sinks   []namedSink
	timeout time.Duration
	logger  logger.Logger
	metrics *metrics.Metrics
}

var _ registry.Notifier = (*EventDispatcher)(nil)

// NewEventDispatcher creates a dispatcher with no sinks
func NewEventDispatcher(timeout time.Duration, logger logger.Logger, m *metrics.Metrics) *EventDispatcher {
	return &EventDispatcher{
		timeout: timeout,
		logger:  logger,
		metrics: m,
	}
}

// AddSink registers a sink under a name used in logs and metrics
func (d *EventDispatcher) AddSink(name string, repo repository.FlightEventRepository) {
	d.sinks = append(d.sinks, namedSink{name: name, repo: repo})
	d.logger.Info("Registered flight event sink", "sink", name)
}

// Sinks returns the registered sink names
func (d *EventDispatcher) Sinks() []string {
	names := make([]string, 0, len(d.sinks))
	for _, s := range d.sinks {
		names = append(names, s.name)
	}
	return names
}

// Notify implements registry.Notifier
func (d *EventDispatcher) Notify(event entity.FlightEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	d.logger.Debug("Dispatching flight event",
		"eventID", event.ID,
		"registry", event.Registry,
		"action", event.Action,
		"flightID", event.FlightID)

	if d.metrics != nil {
		d.metrics.EventsDispatched.Inc()
	}

	for _, s := range d.sinks {
		d.write(s, &event)
	}
}

func (d *EventDispatcher) write(s namedSink, event *entity.FlightEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Flight event sink panicked", "sink", s.name, "eventID", event.ID, "panic", r)
			d.countError(s.name)
		}
	}()

	if err := s.repo.Append(ctx, event); err != nil {
		d.logger.Error("Failed to write flight event", "sink", s.name, "eventID", event.ID, "error", err)
		d.countError(s.name)
	}
}

func (d *EventDispatcher) countError(sink string) {
	if d.metrics != nil {
		d.metrics.SinkErrors.WithLabelValues(sink).Inc()
	}
}
