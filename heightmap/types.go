// Package heightmap defines core types, options, and sentinel errors
// for the heightmap subpackage of github.com/katalvlaran/hillclimb.
package heightmap

import (
	"errors"
	"fmt"
)

// Sentinel errors for heightmap operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("heightmap: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("heightmap: all rows must have the same length")
	// ErrNegativeElevation indicates a cell holds an elevation code below zero.
	ErrNegativeElevation = errors.New("heightmap: elevation codes must be non-negative")
	// ErrOutOfBounds indicates a position outside [0,Width)×[0,Height).
	ErrOutOfBounds = errors.New("heightmap: position out of bounds")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("heightmap: invalid option supplied")
)

// DefaultPeak is the highest elevation code of the a–z alphabet ('z'-'a').
const DefaultPeak = 25

// Position identifies a grid cell. It is comparable and safe to use as a map key.
type Position struct {
	X, Y int
}

// Less reports whether p precedes q in row-major order (by Y, then X).
func (p Position) Less(q Position) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// NoPosition is returned where no cell exists.
var NoPosition = Position{X: -1, Y: -1}

// String formats p as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Options contains tunable parameters for a Grid.
type Options struct {
	// Peak is the maximum elevation code of the alphabet. The goal cell of a
	// search is treated as standing at this elevation.
	Peak int

	// internal error recorded during option parsing
	err error
}

// Option configures a Grid via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with Peak=DefaultPeak.
func DefaultOptions() Options {
	return Options{Peak: DefaultPeak}
}

// WithPeak sets the maximum elevation code. Negative values are recorded
// and surfaced as ErrOptionViolation by NewGrid.
func WithPeak(peak int) Option {
	return func(o *Options) {
		if peak < 0 {
			o.err = fmt.Errorf("%w: peak cannot be negative (%d)", ErrOptionViolation, peak)
			return
		}
		o.Peak = peak
	}
}

// Grid is an immutable rectangular elevation map.
// Width and Height define dimensions; cells[y][x] holds the elevation code.
// neighborOffsets is precomputed for efficient adjacency lookups.
//
// Width, Height and Peak are exported for reading only. They are fixed by
// NewGrid and every bounds check relies on them; assigning to them leaves
// the Grid inconsistent.
type Grid struct {
	Width, Height   int
	Peak            int
	cells           [][]int
	neighborOffsets [4][2]int
}
