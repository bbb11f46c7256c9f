package simulator

import (
	"math"
	"testing"

	"github.com/kilianp07/solarsim/core/model"
)

func TestValidateT(t *testing.T) {
	if err := ValidateT(1); err != nil {
		t.Fatalf("T=1 must be valid: %v", err)
	}
	for _, v := range []int{0, -5} {
		if err := ValidateT(v); err == nil || err.Error() != MsgInvalidT {
			t.Fatalf("T=%d: expected %q got %v", v, MsgInvalidT, err)
		}
	}
}

func TestValidateNetwork_Valid(t *testing.T) {
	if err := ValidateNetwork(nil); err != nil {
		t.Fatalf("empty network must be valid: %v", err)
	}
	if err := ValidateNetwork([]model.PowerPlant{{Name: "a", Age: 0}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateT_UpperBound(t *testing.T) {
	if err := ValidateT(MaxDays); err != nil {
		t.Fatalf("T=MaxDays must be valid: %v", err)
	}
	for _, v := range []int{MaxDays + 1, math.MaxInt} {
		if err := ValidateT(v); err == nil || err.Error() != MsgInvalidT {
			t.Fatalf("T=%d: expected %q got %v", v, MsgInvalidT, err)
		}
	}
}

func TestValidateNetwork_AgeUpperBound(t *testing.T) {
	if err := ValidateNetwork([]model.PowerPlant{{Name: "a", Age: MaxAge}}); err != nil {
		t.Fatalf("age MaxAge must be valid: %v", err)
	}
	err := ValidateNetwork([]model.PowerPlant{{Name: "a", Age: math.MaxInt}})
	if err == nil || err.Error() != MsgAgeOutOfRange {
		t.Fatalf("expected %q got %v", MsgAgeOutOfRange, err)
	}
}
