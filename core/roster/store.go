// Package roster defines the storage contract of the active power plant
// network and an in-memory implementation.
//
// Stores persist the date each plant went into service rather than its age,
// so the age reported by List grows by one every day.
package roster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/solarsim/core/model"
)

// Store holds the active roster. Replace is all-or-nothing: concurrent
// readers observe either the previous or the new roster, never a mix.
type Store interface {
	Replace(ctx context.Context, plants []model.PowerPlant) error
	List(ctx context.Context) ([]model.PowerPlant, error)
	Close() error
}

// Clock returns the current time. Stores use it to convert ages to setup
// dates and back.
type Clock func() time.Time

const secondsPerDay = 24 * 60 * 60

// MaxStoredAge is the largest age a store accepts. Larger ages would push
// the setup date out of the range time.Time can represent.
const MaxStoredAge = math.MaxInt32

// ErrAgeOutOfRange is returned by Replace when a plant is older than
// MaxStoredAge.
var ErrAgeOutOfRange = errors.New("age out of range")

// CheckAges rejects plants whose age cannot be stored as a setup date.
func CheckAges(plants []model.PowerPlant) error {
	for i, p := range plants {
		if p.Age > MaxStoredAge {
			return fmt.Errorf("plant %d (%q) age %d: %w", i, p.Name, p.Age, ErrAgeOutOfRange)
		}
	}
	return nil
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SetupDate returns the day a plant aged age days at now went into service.
func SetupDate(now time.Time, age int) time.Time {
	return Day(now).AddDate(0, 0, -age)
}

// AgeOn returns the number of whole days between setup and now.
func AgeOn(now, setup time.Time) int {
	return int((Day(now).Unix() - Day(setup).Unix()) / secondsPerDay)
}
