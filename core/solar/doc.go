// Package solar implements the energy output engine of a solar power plant.
//
// A Curve holds the cumulative output of a single plant for every age in days
// up to MaxAge. It is built once and shared read-only by every Calculator that
// derives the energy produced over an interval of days from two curve lookups.
package solar
