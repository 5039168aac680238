package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/studiodesk/core/factory"
	coremetrics "github.com/kilianp07/studiodesk/core/metrics"
)

// init registers the built-in Prometheus sink.
func init() {
	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c struct {
			Namespace string `json:"namespace"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		var reg prometheus.Registerer = prometheus.DefaultRegisterer
		if c.Namespace != "" {
			reg = prometheus.WrapRegistererWithPrefix(c.Namespace+"_", reg)
		}
		return NewPromSinkWithRegistry(reg)
	})
}
