package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RegistryOperations   *prometheus.CounterVec
	RegistrySize         *prometheus.GaugeVec
	SetOperationDuration *prometheus.HistogramVec
	EventsDispatched     prometheus.Counter
	SinkErrors           *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on the default registerer
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWithRegisterer(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates new prometheus metrics registered on reg
func NewMetricsWithRegisterer(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RegistryOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_operations_total",
			Help:      "The total number of registry operations by outcome",
		}, []string{"operation", "outcome"}),
		RegistrySize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_size",
			Help:      "The number of flights currently held by a registry",
		}, []string{"registry"}),
		SetOperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "set_operation_duration_seconds",
			Help:      "Time taken to compute set operations between registries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		EventsDispatched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dispatched_total",
			Help:      "The total number of flight events handed to sinks",
		}),
		SinkErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_sink_errors_total",
			Help:      "The total number of failed flight event writes",
		}, []string{"sink"}),
	}
}
