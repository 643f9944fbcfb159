package climb_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hillclimb/climb"
	"github.com/katalvlaran/hillclimb/heightmap"
)

// validMove restates the climb rule independently of the package under test.
func validMove(g *heightmap.Grid, goal, a, b heightmap.Position) bool {
	ea, _ := g.ElevationAt(a)
	if b == goal {
		return ea+1 >= g.Peak
	}
	eb, _ := g.ElevationAt(b)
	return eb <= ea+1
}

// exhaustive enumerates every simple path from start and returns the length
// of the shortest one that ends on goal, or climb.Unreachable.
// Exponential; only for tiny grids.
func exhaustive(g *heightmap.Grid, start, goal heightmap.Position) int {
	if start == goal {
		return 0
	}
	best := climb.Unreachable
	onPath := map[heightmap.Position]bool{start: true}

	var walk func(at heightmap.Position, steps int)
	walk = func(at heightmap.Position, steps int) {
		if best != climb.Unreachable && steps+1 >= best {
			return
		}
		for _, nb := range g.Neighbors(at) {
			if onPath[nb] || !validMove(g, goal, at, nb) {
				continue
			}
			if nb == goal {
				best = steps + 1
				continue
			}
			onPath[nb] = true
			walk(nb, steps+1)
			delete(onPath, nb)
		}
	}
	walk(start, 0)

	return best
}

// relaxed computes the goal distance by repeated edge relaxation until a
// fixed point (Bellman–Ford). The goal is never expanded.
func relaxed(g *heightmap.Grid, start, goal heightmap.Position) int {
	if start == goal {
		return 0
	}
	dist := map[heightmap.Position]int{start: 0}
	for changed := true; changed; {
		changed = false
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				at := heightmap.Position{X: x, Y: y}
				d, ok := dist[at]
				if !ok || at == goal {
					continue
				}
				for _, nb := range g.Neighbors(at) {
					if !validMove(g, goal, at, nb) {
						continue
					}
					if cur, seen := dist[nb]; !seen || d+1 < cur {
						dist[nb] = d + 1
						changed = true
					}
				}
			}
		}
	}
	if d, ok := dist[goal]; ok {
		return d
	}
	return climb.Unreachable
}

// randomCase builds a w×h grid with elevations in [0,peak] and picks a start
// (forced to the lowest elevation) and a goal.
func randomCase(t testing.TB, rng *rand.Rand, maxSide, peak int) (*heightmap.Grid, heightmap.Position, heightmap.Position) {
	t.Helper()
	w, h := 1+rng.Intn(maxSide), 1+rng.Intn(maxSide)
	values := make([][]int, h)
	for y := range values {
		values[y] = make([]int, w)
		for x := range values[y] {
			values[y][x] = rng.Intn(peak + 1)
		}
	}
	start := heightmap.Position{X: rng.Intn(w), Y: rng.Intn(h)}
	goal := heightmap.Position{X: rng.Intn(w), Y: rng.Intn(h)}
	values[start.Y][start.X] = 0
	values[goal.Y][goal.X] = peak

	return mustGrid(t, values, heightmap.WithPeak(peak)), start, goal
}

// TestShortestPath_MatchesExhaustive cross-checks tiny grids against
// enumeration of every simple path.
func TestShortestPath_MatchesExhaustive(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for i := 0; i < 300; i++ {
		g, start, goal := randomCase(t, rng, 4, 3)
		want := exhaustive(g, start, goal)

		res, err := climb.ShortestPath(g, start, goal, quiet)
		require.NoError(t, err)
		require.Equal(t, want, res.Distance, "case %d: %dx%d %v→%v", i, g.Width, g.Height, start, goal)
		require.Equal(t, want != climb.Unreachable, res.Found)
	}
}

// TestShortestPath_MatchesRelaxation cross-checks grids up to 8×8 against
// a Bellman–Ford fixed point.
func TestShortestPath_MatchesRelaxation(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for i := 0; i < 500; i++ {
		g, start, goal := randomCase(t, rng, 8, 3)
		want := relaxed(g, start, goal)

		res, err := climb.ShortestPath(g, start, goal, quiet)
		require.NoError(t, err)
		require.Equal(t, want, res.Distance, "case %d: %dx%d %v→%v", i, g.Width, g.Height, start, goal)
	}
}

// TestMinimize_MatchesOracle checks both strategies against the minimum of
// the relaxation oracle over every lowest cell, and against the designated start.
func TestMinimize_MatchesOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	lowest := heightmap.AtElevation(0)
	for i := 0; i < 200; i++ {
		g, start, goal := randomCase(t, rng, 8, 3)
		name := fmt.Sprintf("case %d: %dx%d goal %v", i, g.Width, g.Height, goal)

		want := climb.MultiResult{Distance: climb.Unreachable}
		for p := range g.CellsMatching(lowest) {
			want.Candidates++
			d := relaxed(g, p, goal)
			if d != climb.Unreachable && (!want.Found || d < want.Distance) {
				want.Distance, want.Start, want.Found = d, p, true
			}
		}

		rev, err := climb.Minimize(g, lowest, goal, quiet)
		require.NoError(t, err, name)
		per, err := climb.Minimize(g, lowest, goal, quiet,
			climb.WithStrategy(climb.StrategyPerCandidate), climb.WithWorkers(3))
		require.NoError(t, err, name)

		want.Strategy = climb.StrategyReverse
		assert.Equal(t, want, rev, name)
		want.Strategy = climb.StrategyPerCandidate
		assert.Equal(t, want, per, name)

		single, err := climb.ShortestPath(g, start, goal, quiet)
		require.NoError(t, err, name)
		if single.Found && start != goal {
			assert.True(t, rev.Found, name)
			assert.LessOrEqual(t, rev.Distance, single.Distance, name)
		}
	}
}
