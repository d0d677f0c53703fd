package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks parameter validation failures. Detected before any
// random draw; a run never starts with an invalid configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrDimensionMismatch marks a raw series whose shape disagrees with the
// declared compartment/replicate counts. Indicates caller misuse, not a
// recoverable runtime condition.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Parameters groups the epidemic model inputs for NewSimulator.
type Parameters struct {
	Population      int64   // total population N (must be > 0)
	InitialInfected int64   // infected count at t=0 (0 <= I0 <= N)
	Beta            float64 // contact rate per unit time (must be >= 0)
	Gamma           float64 // recovery rate per unit time (must be >= 0)
	Dt              float64 // step size for hazard-to-probability conversion (must be > 0)
}

// Validate checks that all parameter ranges are valid.
// Errors wrap ErrInvalidConfig so callers can classify with errors.Is.
func (p Parameters) Validate() error {
	if p.Population <= 0 {
		return fmt.Errorf("%w: population must be positive, got %d", ErrInvalidConfig, p.Population)
	}
	if p.InitialInfected < 0 {
		return fmt.Errorf("%w: initial_infected must be non-negative, got %d", ErrInvalidConfig, p.InitialInfected)
	}
	if p.InitialInfected > p.Population {
		return fmt.Errorf("%w: initial_infected %d exceeds population %d", ErrInvalidConfig, p.InitialInfected, p.Population)
	}
	if p.Beta < 0 {
		return fmt.Errorf("%w: beta must be non-negative, got %f", ErrInvalidConfig, p.Beta)
	}
	if p.Gamma < 0 {
		return fmt.Errorf("%w: gamma must be non-negative, got %f", ErrInvalidConfig, p.Gamma)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, p.Dt)
	}
	return nil
}

// TimeGrid is the ordered sequence of time points a run is evaluated on.
// The first point carries the initial state; every later point is one
// Markov step after its predecessor.
type TimeGrid []float64

// NewTimeGrid builds the integer grid start..end (inclusive).
func NewTimeGrid(start, end int64) (TimeGrid, error) {
	if end < start {
		return nil, fmt.Errorf("%w: time grid end %d precedes start %d", ErrInvalidConfig, end, start)
	}
	grid := make(TimeGrid, 0, end-start+1)
	for t := start; t <= end; t++ {
		grid = append(grid, float64(t))
	}
	return grid, nil
}

// Validate checks that the grid is non-empty and strictly increasing.
func (g TimeGrid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: time grid is empty", ErrInvalidConfig)
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return fmt.Errorf("%w: time grid not strictly increasing at index %d (%f after %f)", ErrInvalidConfig, i, g[i], g[i-1])
		}
	}
	return nil
}

// Steps returns the number of Markov steps a run over this grid performs.
func (g TimeGrid) Steps() int {
	if len(g) == 0 {
		return 0
	}
	return len(g) - 1
}
