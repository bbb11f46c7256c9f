package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/solarsim/core/factory"
	coremetrics "github.com/kilianp07/solarsim/core/metrics"
)

// PromConfig configures the prometheus sink. An empty ListenAddress mounts
// /metrics on the API listener.
type PromConfig struct {
	ListenAddress string `json:"listen_address"`
}

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterMetricsSink("prometheus", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c PromConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		s, err := NewPromSinkWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
		if err != nil {
			return nil, err
		}
		s.ListenAddress = c.ListenAddress
		return s, nil
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})
}
