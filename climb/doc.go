// Package climb finds fewest-step routes across a heightmap.Grid under a
// climbing rule: a step onto an orthogonal neighbor may rise by at most one
// elevation level and may descend any amount.
//
// What:
//
//   - ShortestPath: uniform-cost search from one start to the goal. Every
//     step costs 1, so the frontier pops in breadth-first layers; ties are
//     broken by insertion order, which makes results reproducible.
//   - Minimize: the fewest steps to the goal from any position matching a
//     predicate (typically heightmap.AtElevation(0)), either by one backward
//     traversal from the goal or by one forward search per candidate.
//
// The goal quirk:
//
//	The goal cell counts as standing at Grid.Peak, whatever its stored code.
//	Entering it from elevation e requires e+1 ≥ Peak.
//
// Invariant:
//
//	A position's first recorded distance is final. If a later expansion
//	offers a strictly smaller distance, the search aborts with a
//	*ConsistencyFault (errors.Is(err, ErrConsistencyFault)) that names the
//	positions and distances involved. It signals a defect in frontier
//	ordering, never a property of the input.
//
// Outcomes:
//
//   - An unreachable goal is a normal Result with Found == false and
//     Distance == Unreachable. It is never reported as an error.
//   - heightmap.ErrOutOfBounds, ErrNilGrid, ErrNilPredicate and
//     ErrOptionViolation are caller errors.
//   - Cancellation is cooperative: WithContext is checked between pops.
//
// Complexity (N = W·H):
//
//   - ShortestPath:                   O(N log N) time, O(N) memory.
//   - Minimize, StrategyReverse:      O(N log N) time, O(N) memory.
//   - Minimize, StrategyPerCandidate: O(C·N log N) time for C candidates,
//     O(Workers·N) memory.
//
// Observability: every search increments hillclimb_searches_total and
// friends through the default Prometheus registerer, opens an OpenTelemetry
// span on the global tracer provider, and logs through Options.Logger.
package climb
