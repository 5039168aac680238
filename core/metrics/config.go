package metrics

import "github.com/kilianp07/studiodesk/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Textfile, when set, receives the Prometheus text exposition after each
	// CLI run so a node exporter can pick it up.
	Textfile string `json:"textfile"`
}
