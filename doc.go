// Package hillclimb finds fewest-step routes across elevation grids where
// each move may climb at most one level and may drop any amount.
//
// What is in the box?
//
//	heightmap/      the immutable Grid, Position, and the S/E text loader
//	climb/          ShortestPath (single source) and Minimize (best of many starts)
//	config/         HILLCLIMB_* settings from the environment, .env or TOML
//	api/            gin HTTP surface with request IDs and /metrics
//	view/           tcell terminal viewer and PNG export of routes
//	cmd/hillclimb   solve, serve, view and render subcommands
//
// Quick start:
//
//	t, _ := heightmap.ParseString("Sabqponm\nabcryxxl\naccszExk\nacctuvwj\nabdefghi\n")
//	res, _ := climb.ShortestPath(t.Grid, t.Start, t.Goal)            // 31 steps
//	best, _ := climb.Minimize(t.Grid, heightmap.AtElevation(0), t.Goal) // 29 steps
//
// The goal cell always counts as the peak elevation: it can be entered
// only from a cell one level below Peak or higher, whatever code it holds.
//
// Searches are uniform-cost with unit steps, so the first distance recorded
// for a cell is final. A later, shorter offer means the frontier ordering
// was broken and is reported as a ConsistencyFault instead of being
// silently repaired.
package hillclimb
