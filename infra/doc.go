// Package infra contains technical adapters: roster stores, metrics sinks,
// the MQTT event publisher and error monitoring. These packages depend only
// on the interfaces defined in the core packages.
package infra
