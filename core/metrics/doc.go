// Package metrics defines the events emitted by the partitioner and advisor
// services and the sinks recording them. Sinks are built from configuration
// through NewMetricsSink; several configured sinks are combined into a
// MultiSink. Implementations such as the Prometheus sink live in
// infra/metrics and register themselves on import.
package metrics
