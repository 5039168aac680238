package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/studiodesk/config"
	"github.com/kilianp07/studiodesk/core/advisor"
	"github.com/kilianp07/studiodesk/core/clock"
	coremetrics "github.com/kilianp07/studiodesk/core/metrics"
	"github.com/kilianp07/studiodesk/core/model"
	"github.com/kilianp07/studiodesk/core/partition"
	"github.com/kilianp07/studiodesk/infra/logger"
	_ "github.com/kilianp07/studiodesk/infra/metrics" // registers the prometheus sink
	"github.com/kilianp07/studiodesk/internal/eventbus"
)

// DataQualityEvent is published when a partition run excludes orders.
type DataQualityEvent struct {
	RunID    string
	OrderIDs []string
	Err      error
	Time     time.Time
}

// Service wires the partitioner, the advisor, metrics and the
// data-quality bus.
type Service struct {
	partitioner *partition.Partitioner
	memo        *partition.Memo
	advisor     *advisor.Advisor
	sink        coremetrics.MetricsSink
	bus         *eventbus.Bus[DataQualityEvent]
	clock       clock.Clock
	log         logger.Logger
}

// Option customises a Service.
type Option func(*options)

type options struct {
	clock clock.Clock
	log   logger.Logger
	sink  coremetrics.MetricsSink
}

// WithClock overrides the system clock.
func WithClock(c clock.Clock) Option { return func(o *options) { o.clock = c } }

// WithLogger overrides the service logger.
func WithLogger(l logger.Logger) Option { return func(o *options) { o.log = l } }

// WithMetricsSink bypasses the sinks declared in the configuration.
func WithMetricsSink(s coremetrics.MetricsSink) Option { return func(o *options) { o.sink = s } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	o := options{clock: clock.System{}}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = logger.New("service")
	}
	if o.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		o.sink = sink
	}

	p, err := partition.New(cfg.Partition, o.clock, partition.WithLogger(o.log))
	if err != nil {
		return nil, fmt.Errorf("partitioner: %w", err)
	}
	adv, err := advisor.New(cfg.Advisor, o.clock, advisor.WithLogger(o.log))
	if err != nil {
		return nil, fmt.Errorf("advisor: %w", err)
	}
	return &Service{
		partitioner: p,
		memo:        partition.NewMemo(p),
		advisor:     adv,
		sink:        o.sink,
		bus:         eventbus.New[DataQualityEvent](0),
		clock:       o.clock,
		log:         o.log,
	}, nil
}

type fieldLogger interface {
	With(fields map[string]any) logger.Logger
}

func (s *Service) runLogger(op, runID string) logger.Logger {
	if fl, ok := s.log.(fieldLogger); ok {
		return fl.With(map[string]any{"run_id": runID, "operation": op})
	}
	return s.log
}

// Partition buckets orders, records metrics and publishes a
// DataQualityEvent when orders had to be excluded.
func (s *Service) Partition(orders []model.Order, basicStatus string, filters model.FilterConfiguration) (partition.Result, error) {
	runID := uuid.NewString()
	log := s.runLogger("partition", runID)
	start := time.Now()

	res, err := s.memo.Partition(orders, basicStatus, filters)
	if err != nil {
		var ce *partition.ConfigurationError
		if errors.As(err, &ce) {
			if rec, ok := s.sink.(coremetrics.ConfigErrorRecorder); ok {
				if rerr := rec.RecordConfigError(ce.Field); rerr != nil {
					log.Errorf("record config error: %v", rerr)
				}
			}
		}
		log.Warnf("partition rejected: %v", err)
		return res, err
	}

	if len(res.Excluded) > 0 {
		ev := DataQualityEvent{RunID: runID, OrderIDs: res.ExcludedIDs(), Err: res.Err(), Time: s.clock.Now()}
		delivered := s.bus.Publish(ev)
		log.Warnf("%d orders excluded, notified %d subscribers", len(ev.OrderIDs), delivered)
	}

	ev := coremetrics.PartitionEvent{
		RunID:     runID,
		Today:     len(res.Today),
		ThisWeek:  len(res.ThisWeek),
		Remaining: len(res.Remaining),
		Filtered:  len(res.FilteredRemaining),
		Excluded:  len(res.Excluded),
		Duration:  time.Since(start),
		Time:      s.clock.Now(),
	}
	if err := s.sink.RecordPartition(ev); err != nil {
		log.Errorf("record partition: %v", err)
	}
	log.Infof("partitioned %d orders: today=%d this_week=%d remaining=%d", res.TotalCount, ev.Today, ev.ThisWeek, ev.Filtered)
	return res, nil
}

// Summaries returns per-bucket billing summaries for res.
func (s *Service) Summaries(res partition.Result) partition.Summaries {
	return s.partitioner.Summarize(res)
}

// Suggest proposes appointment slots and records metrics.
func (s *Service) Suggest(ctx context.Context, req model.SuggestRequest) ([]model.Suggestion, error) {
	runID := uuid.NewString()
	log := s.runLogger("suggest", runID)
	start := time.Now()

	out, err := s.advisor.SuggestContext(ctx, req)
	if err != nil {
		return nil, err
	}
	ev := coremetrics.SuggestionEvent{
		RunID:    runID,
		ByKind:   make(map[string]int),
		Returned: len(out),
		Duration: time.Since(start),
		Time:     s.clock.Now(),
	}
	for _, sg := range out {
		ev.ByKind[string(sg.Kind)]++
	}
	if rec, ok := s.sink.(coremetrics.SuggestionRecorder); ok {
		if err := rec.RecordSuggestions(ev); err != nil {
			log.Errorf("record suggestions: %v", err)
		}
	}
	log.Infof("suggested %d slots", len(out))
	return out, nil
}

// DataQuality subscribes to data-quality notifications.
func (s *Service) DataQuality() <-chan DataQualityEvent { return s.bus.Subscribe() }

// Unsubscribe releases a channel returned by DataQuality.
func (s *Service) Unsubscribe(ch <-chan DataQualityEvent) { s.bus.Unsubscribe(ch) }

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
