// Package events defines the network events emitted on the event bus.
//
// Available event types:
//   - RosterLoaded: the active roster was replaced
//   - NetworkSimulated: an output projection was computed
package events
