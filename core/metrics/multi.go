package metrics

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPartition forwards to all sinks, returning the first error encountered.
func (m *MultiSink) RecordPartition(ev PartitionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPartition(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordSuggestions forwards to sinks implementing SuggestionRecorder.
func (m *MultiSink) RecordSuggestions(ev SuggestionEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SuggestionRecorder); ok {
			if err := rec.RecordSuggestions(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordConfigError forwards to sinks implementing ConfigErrorRecorder.
func (m *MultiSink) RecordConfigError(field string) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ConfigErrorRecorder); ok {
			if err := rec.RecordConfigError(field); err != nil {
				return err
			}
		}
	}
	return nil
}
