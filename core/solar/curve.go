package solar

import "github.com/shopspring/decimal"

const (
	// MaxAge is the last plant age in days (25 years) covered by the curve.
	MaxAge = 25 * 365
	// Precision is the number of fractional digits kept by rounded steps.
	Precision int32 = 10

	warmupDays = 60
)

var (
	daysPerYear       = decimal.NewFromInt(365)
	peakDailyOutput   = decimal.NewFromInt(20)
	yearlyDegradation = decimal.RequireFromString("0.005")
)

// Curve maps a plant age in days to the cumulative output produced from day 0
// up to and including that day. It is immutable once built.
type Curve struct {
	cumulative []decimal.Decimal
}

// NewCurve computes the cumulative output for every age in [0, MaxAge].
func NewCurve() *Curve {
	cum := make([]decimal.Decimal, MaxAge+1)
	acc := decimal.Zero
	for age := range cum {
		acc = acc.Add(DailyOutput(age))
		cum[age] = acc
	}
	return &Curve{cumulative: cum}
}

// DailyOutput returns the output of a plant on the day it is age days old.
// Plants produce nothing during their first 60 days.
func DailyOutput(age int) decimal.Decimal {
	if age <= warmupDays {
		return decimal.Zero
	}
	years := decimal.NewFromInt(int64(age)).DivRound(daysPerYear, Precision)
	return peakDailyOutput.Mul(decimal.NewFromInt(1).Sub(years.Mul(yearlyDegradation)))
}

// Cumulative returns the cumulative output at age. Negative ages resolve to
// zero and ages past MaxAge resolve to the MaxAge value.
func (c *Curve) Cumulative(age int) decimal.Decimal {
	if age < 0 {
		return decimal.Zero
	}
	if age > MaxAge {
		age = MaxAge
	}
	return c.cumulative[age]
}

// Len returns the number of ages held by the curve.
func (c *Curve) Len() int { return len(c.cumulative) }
