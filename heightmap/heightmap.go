package heightmap

import (
	"fmt"
	"iter"
)

// NewGrid constructs a Grid from a non-empty, rectangular 2D slice of
// non-negative elevation codes. It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrNegativeElevation for a
// code below zero, and ErrOptionViolation for invalid options.
// Complexity: O(W×H) time and memory.
func NewGrid(values [][]int, opts ...Option) (*Grid, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	cells := make([][]int, h)
	for y, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), w)
		}
		cells[y] = make([]int, w)
		for x, e := range row {
			if e < 0 {
				return nil, fmt.Errorf("%w: %d at %v", ErrNegativeElevation, e, Position{x, y})
			}
			cells[y][x] = e
		}
	}

	return &Grid{
		Width:  w,
		Height: h,
		Peak:   o.Peak,
		cells:  cells,
		// up, down, left, right
		neighborOffsets: [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}},
	}, nil
}

// InBounds reports whether p lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// ElevationAt returns the elevation code stored at p.
// Returns ErrOutOfBounds if p lies outside the grid.
func (g *Grid) ElevationAt(p Position) (int, error) {
	if !g.InBounds(p) {
		return 0, fmt.Errorf("%w: %v not in %dx%d grid", ErrOutOfBounds, p, g.Width, g.Height)
	}
	return g.cells[p.Y][p.X], nil
}

// elevation is ElevationAt without the bounds check, for callers that
// obtained p from Neighbors or CellsMatching.
func (g *Grid) elevation(p Position) int {
	return g.cells[p.Y][p.X]
}

// Neighbors returns the in-bounds orthogonal neighbors of p in the fixed
// order up, down, left, right. Cells on edges and corners have fewer.
// Returns nil if p itself is out of bounds.
func (g *Grid) Neighbors(p Position) []Position {
	if !g.InBounds(p) {
		return nil
	}
	return g.AppendNeighbors(make([]Position, 0, 4), p)
}

// AppendNeighbors appends the in-bounds orthogonal neighbors of p to buf
// and returns the extended slice. It lets traversal loops reuse one buffer.
// p must be in bounds.
func (g *Grid) AppendNeighbors(buf []Position, p Position) []Position {
	for _, d := range g.neighborOffsets {
		n := Position{X: p.X + d[0], Y: p.Y + d[1]}
		if g.InBounds(n) {
			buf = append(buf, n)
		}
	}
	return buf
}

// CellsMatching returns a lazy sequence of every position whose elevation
// satisfies pred, in row-major order (ascending y, then x).
// The sequence is finite and may be ranged over any number of times.
func (g *Grid) CellsMatching(pred func(elevation int) bool) iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				if pred(g.cells[y][x]) && !yield(Position{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// AtElevation returns a predicate matching cells of exactly elevation e.
// AtElevation(0) selects the lowest cells of the a–z alphabet.
func AtElevation(e int) func(int) bool {
	return func(v int) bool { return v == e }
}

// Index maps p to a row-major index: Y*Width + X.
// Complexity: O(1).
func (g *Grid) Index(p Position) int {
	return p.Y*g.Width + p.X
}

// Position converts a row-major index back to a Position. A Grid that was
// not built by NewGrid has no cells, and every index maps to NoPosition.
// Complexity: O(1).
func (g *Grid) Position(idx int) Position {
	if g.Width <= 0 {
		return NoPosition
	}
	return Position{X: idx % g.Width, Y: idx / g.Width}
}

// Len returns the number of cells, Width×Height.
func (g *Grid) Len() int {
	return g.Width * g.Height
}
