package events

import "time"

// RosterLoaded is published after the active roster has been replaced.
type RosterLoaded struct {
	LoadID string
	Plants int
	Time   time.Time
}
