package simulator

import (
	"math"
	"strings"

	"github.com/kilianp07/solarsim/core/model"
	"github.com/kilianp07/solarsim/core/roster"
)

// MaxDays is the longest accepted projection horizon. Together with
// roster.MaxStoredAge it keeps age+T-1 from overflowing.
const MaxDays = math.MaxInt32

// MaxAge is the oldest accepted plant age.
const MaxAge = roster.MaxStoredAge

// ValidateT checks the projection horizon.
func ValidateT(t int) error {
	if t <= 0 || t > MaxDays {
		return &ValidationError{Msg: MsgInvalidT}
	}
	return nil
}

// ValidateNetwork checks every plant and reports the first violation.
func ValidateNetwork(plants []model.PowerPlant) error {
	for _, p := range plants {
		if strings.TrimSpace(p.Name) == "" {
			return &ValidationError{Msg: MsgEmptyName}
		}
		if p.Age < 0 {
			return &ValidationError{Msg: MsgNegativeAge}
		}
		if p.Age > MaxAge {
			return &ValidationError{Msg: MsgAgeOutOfRange}
		}
	}
	return nil
}
