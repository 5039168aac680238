package metrics

import "time"

// PartitionEvent describes one partition run.
type PartitionEvent struct {
	RunID     string
	Today     int
	ThisWeek  int
	Remaining int
	Filtered  int
	Excluded  int
	Duration  time.Duration
	Time      time.Time
}

// SuggestionEvent describes one advisor run.
type SuggestionEvent struct {
	RunID string
	// ByKind counts returned suggestions per generating pass.
	ByKind   map[string]int
	Returned int
	Duration time.Duration
	Time     time.Time
}

// MetricsSink records partition runs.
type MetricsSink interface {
	RecordPartition(ev PartitionEvent) error
}

// SuggestionRecorder is implemented by sinks that also record advisor runs.
type SuggestionRecorder interface {
	RecordSuggestions(ev SuggestionEvent) error
}

// ConfigErrorRecorder is implemented by sinks counting rejected filter
// configurations.
type ConfigErrorRecorder interface {
	RecordConfigError(field string) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordPartition(PartitionEvent) error     { return nil }
func (NopSink) RecordSuggestions(SuggestionEvent) error { return nil }
func (NopSink) RecordConfigError(string) error          { return nil }
