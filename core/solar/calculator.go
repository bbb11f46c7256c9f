package solar

import "github.com/shopspring/decimal"

// SunHoursPerDay converts the curve units to kWh.
var SunHoursPerDay = decimal.NewFromInt(1000).DivRound(daysPerYear, Precision)

// Calculator derives interval outputs from a shared Curve.
type Calculator struct {
	curve *Curve
}

// NewCalculator returns a Calculator reading from c. A nil curve is built on
// the spot.
func NewCalculator(c *Curve) *Calculator {
	if c == nil {
		c = NewCurve()
	}
	return &Calculator{curve: c}
}

// Curve exposes the underlying curve.
func (c *Calculator) Curve() *Curve { return c.curve }

// PowerOutput returns the kWh produced by a plant aged age days today over
// the next t days, i.e. during the ages [age, age+t-1]. Nothing accrues past
// MaxAge. Callers validate t >= 1; non positive values yield zero.
func (c *Calculator) PowerOutput(age, t int) decimal.Decimal {
	if t < 1 || age > MaxAge {
		return decimal.Zero
	}
	last := MaxAge
	if age < 0 || t-1 <= MaxAge-age {
		last = age + t - 1
	}
	raw := c.curve.Cumulative(last).Sub(c.curve.Cumulative(age - 1))
	return raw.Mul(SunHoursPerDay).Round(Precision)
}
