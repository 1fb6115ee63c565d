package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/domain/registry"
	"flightdesk-service/pkg/logger"
	"flightdesk-service/pkg/metrics"
)

type memorySink struct {
	events []entity.FlightEvent
	err    error
	panic  bool
}

func (s *memorySink) Append(ctx context.Context, event *entity.FlightEvent) error {
	if s.panic {
		panic("sink exploded")
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, *event)
	return nil
}

func TestEventDispatcherFansOut(t *testing.T) {
	m := metrics.NewMetricsWithRegisterer("test", prometheus.NewRegistry())
	d := NewEventDispatcher(time.Second, logger.NewNopLogger(), m)

	first, second := &memorySink{}, &memorySink{}
	d.AddSink("first", first)
	d.AddSink("second", second)
	assert.Equal(t, []string{"first", "second"}, d.Sinks())

	d.Notify(entity.FlightEvent{Action: entity.ActionInserted, FlightID: 101, Message: "Flight inserted: Air India with ID 101"})

	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	assert.NotEmpty(t, first.events[0].ID, "dispatcher assigns an event id")
	assert.Equal(t, first.events[0].ID, second.events[0].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDispatched))
}

func TestEventDispatcherKeepsGoingAfterFailure(t *testing.T) {
	m := metrics.NewMetricsWithRegisterer("test", prometheus.NewRegistry())
	d := NewEventDispatcher(time.Second, logger.NewNopLogger(), m)

	healthy := &memorySink{}
	d.AddSink("broken", &memorySink{err: errors.New("disk full")})
	d.AddSink("panicky", &memorySink{panic: true})
	d.AddSink("healthy", healthy)

	assert.NotPanics(t, func() {
		d.Notify(entity.FlightEvent{ID: "fixed", Action: entity.ActionDeleted})
	})

	require.Len(t, healthy.events, 1)
	assert.Equal(t, "fixed", healthy.events[0].ID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SinkErrors.WithLabelValues("broken")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SinkErrors.WithLabelValues("panicky")))
}

func TestSinkFailureDoesNotAffectRegistry(t *testing.T) {
	d := NewEventDispatcher(time.Second, logger.NewNopLogger(), nil)
	d.AddSink("broken", &memorySink{err: errors.New("unreachable")})

	desk := NewFlightDesk([]string{PrimaryRegistry}, d, logger.NewNopLogger(), nil)
	require.NoError(t, desk.Insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP")))

	ok, err := desk.Delete(PrimaryRegistry, 101, "0800")
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := desk.Count(PrimaryRegistry)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestEventDispatcherPanickingSink(t *testing.T) {
	m := metrics.NewMetricsWithRegisterer("test", prometheus.NewRegistry())
	d := NewEventDispatcher(time.Second, logger.NewNopLogger(), m)

	after := &memorySink{}
	d.AddSink("panicky", &memorySink{panic: true})
	d.AddSink("after", after)

	for i := 0; i < 2; i++ {
		require.NotPanics(t, func() {
			d.Notify(entity.FlightEvent{Action: entity.ActionUpdated, FlightID: 101})
		})
	}

	assert.Len(t, after.events, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SinkErrors.WithLabelValues("panicky")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SinkErrors.WithLabelValues("after")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsDispatched))
}

type blockingSink struct {
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSink) Append(ctx context.Context, event *entity.FlightEvent) error {
	s.entered <- struct{}{}
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestSlowSinkDoesNotBlockRegistry(t *testing.T) {
	sink := &blockingSink{entered: make(chan struct{}), release: make(chan struct{})}
	d := NewEventDispatcher(time.Minute, logger.NewNopLogger(), nil)
	d.AddSink("slow", sink)
	desk := NewFlightDesk([]string{PrimaryRegistry}, d, logger.NewNopLogger(), nil)

	inserted := make(chan error, 1)
	go func() {
		inserted <- desk.Insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP"))
	}()
	<-sink.entered

	counted := make(chan int, 1)
	go func() {
		n, _ := desk.Count(PrimaryRegistry)
		counted <- n
	}()

	select {
	case n := <-counted:
		assert.Equal(t, 1, n)
	case <-time.After(time.Second):
		t.Fatal("Count() blocked while a sink was writing")
	}

	close(sink.release)
	require.NoError(t, <-inserted)
}

func TestPanickingNotifierDoesNotAffectDesk(t *testing.T) {
	notifier := registry.NotifierFunc(func(entity.FlightEvent) {
		panic("notifier down")
	})
	desk := NewFlightDesk([]string{PrimaryRegistry}, notifier, logger.NewNopLogger(), nil)

	require.NotPanics(t, func() {
		require.NoError(t, desk.Insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP")))
		require.NoError(t, desk.Insert(PrimaryRegistry, entity.NewFlight("Air India", 101, 150, "0800", "1000", "VIP")))
	})

	updated, err := desk.Update(PrimaryRegistry, 101, "0800", "Delayed", 30)
	require.NoError(t, err)
	assert.True(t, updated)

	flights, err := desk.Flights(PrimaryRegistry)
	require.NoError(t, err)
	require.Len(t, flights, 2)
	for _, f := range flights {
		assert.Equal(t, "Delayed", f.Status())
	}
}
