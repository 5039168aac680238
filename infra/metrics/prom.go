package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/studiodesk/core/metrics"
)

// PromSink records partition and advisor runs in Prometheus metrics.
type PromSink struct {
	runs         *prometheus.CounterVec
	orders       *prometheus.GaugeVec
	excluded     prometheus.Counter
	suggestions  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	configErrors *prometheus.CounterVec
}

// NewPromSink registers metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studiodesk_runs_total",
			Help: "Number of partition and suggestion runs",
		}, []string{"operation"}),
		orders: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "studiodesk_partition_orders",
			Help: "Orders per bucket in the latest partition run",
		}, []string{"bucket"}),
		excluded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "studiodesk_partition_excluded_total",
			Help: "Orders excluded because of unparseable scheduled dates",
		}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studiodesk_suggestions_total",
			Help: "Suggestions returned by the advisor",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studiodesk_operation_duration_seconds",
			Help:    "Time spent partitioning orders or building suggestions",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"operation"}),
		configErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studiodesk_filter_config_errors_total",
			Help: "Filter configurations rejected at the boundary",
		}, []string{"field"}),
	}
	var err error
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	if s.orders, err = register(reg, s.orders); err != nil {
		return nil, err
	}
	if s.excluded, err = register(reg, s.excluded); err != nil {
		return nil, err
	}
	if s.suggestions, err = register(reg, s.suggestions); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.configErrors, err = register(reg, s.configErrors); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPartition sets the bucket gauges and counts the run.
func (s *PromSink) RecordPartition(ev coremetrics.PartitionEvent) error {
	s.runs.WithLabelValues("partition").Inc()
	s.orders.WithLabelValues("today").Set(float64(ev.Today))
	s.orders.WithLabelValues("this_week").Set(float64(ev.ThisWeek))
	s.orders.WithLabelValues("remaining").Set(float64(ev.Remaining))
	s.orders.WithLabelValues("filtered").Set(float64(ev.Filtered))
	s.excluded.Add(float64(ev.Excluded))
	s.duration.WithLabelValues("partition").Observe(ev.Duration.Seconds())
	return nil
}

// RecordSuggestions counts returned suggestions per kind.
func (s *PromSink) RecordSuggestions(ev coremetrics.SuggestionEvent) error {
	s.runs.WithLabelValues("suggest").Inc()
	for kind, n := range ev.ByKind {
		s.suggestions.WithLabelValues(kind).Add(float64(n))
	}
	s.duration.WithLabelValues("suggest").Observe(ev.Duration.Seconds())
	return nil
}

// RecordConfigError counts a rejected filter field.
func (s *PromSink) RecordConfigError(field string) error {
	s.configErrors.WithLabelValues(field).Inc()
	return nil
}
