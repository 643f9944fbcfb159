// Package heightmap treats a 2D field of elevation codes as an immutable
// search space for climb-constrained path finding.
//
// What:
//
//   - Grid wraps a rectangular [][]int of non-negative elevation codes
//     together with the Peak of the elevation alphabet.
//   - Bounds-checked ElevationAt, orthogonal Neighbors (up, down, left,
//     right), and a lazy row-major CellsMatching iterator.
//   - Parse reads the textual heightmap format: one row per line, letters
//     'a'..'z' for elevations, 'S' for the start (elevation 'a') and 'E' for
//     the goal (elevation 'z').
//
// Why:
//
//   - A single read-only Grid is shared by every search over it, including
//     concurrent ones. No locking is needed.
//
// Complexity:
//
//   - NewGrid, Parse:  O(W×H) time and memory.
//   - ElevationAt, InBounds, Neighbors: O(1).
//   - CellsMatching:   O(W×H) per full iteration, O(1) memory.
//
// Errors:
//
//   - ErrEmptyGrid:         input has no rows or no columns.
//   - ErrNonRectangular:    rows have differing lengths.
//   - ErrNegativeElevation: an elevation code is below zero.
//   - ErrOutOfBounds:       a position lies outside the grid.
//   - ErrMissingMarker, ErrDuplicateMarker, ErrBadSymbol: Parse failures.
package heightmap
