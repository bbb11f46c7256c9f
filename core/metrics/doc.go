// Package metrics defines the sink interfaces used to observe the simulator.
// Sinks like PromSink and InfluxSink record roster loads, simulations and
// HTTP requests and can be combined with NewMultiSink. The factory helpers
// return a MultiSink automatically when multiple sinks are configured.
package metrics
