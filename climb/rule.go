package climb

import "github.com/katalvlaran/hillclimb/heightmap"

// direction selects which way edges are followed.
type direction int

const (
	forward  direction = iota // from start towards goal
	backward                  // from goal towards every start
)

// climbRule evaluates the edge-validity rule on a grid with a designated goal.
//
// A forward move a→b is valid iff elevation(b) ≤ elevation(a)+1, except that
// the goal counts as standing at g.Peak whatever its stored code: entering it
// from a requires elevation(a)+1 ≥ g.Peak.
type climbRule struct {
	g    *heightmap.Grid
	goal heightmap.Position
}

// canMove reports whether the forward move a→b is valid. Both must be in bounds.
func (r climbRule) canMove(a, b heightmap.Position) bool {
	ea, _ := r.g.ElevationAt(a)
	if b == r.goal {
		return ea+1 >= r.g.Peak
	}
	eb, _ := r.g.ElevationAt(b)
	return eb <= ea+1
}

// canStep reports whether a traversal in direction dir may step from cur to next.
// Backward steps invert the rule: next→cur must be a valid forward move.
// No forward move ever leaves the goal, so backward steps never re-enter it.
func (r climbRule) canStep(dir direction, cur, next heightmap.Position) bool {
	if dir == forward {
		return r.canMove(cur, next)
	}
	if next == r.goal {
		return false
	}
	return r.canMove(next, cur)
}
