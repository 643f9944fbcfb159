package view

import (
	"fmt"

	"github.com/katalvlaran/hillclimb/climb"
	"github.com/katalvlaran/hillclimb/heightmap"
)

// Route selects which of the two computed routes is drawn.
type Route int

const (
	// RouteDesignated starts at the terrain's marked start cell.
	RouteDesignated Route = iota
	// RouteLowest starts at the best cell of the lowest elevation.
	RouteLowest
)

// String returns a short caption for the route.
func (r Route) String() string {
	if r == RouteLowest {
		return "from lowest"
	}
	return "from start"
}

// Model is the state rendered by Render and advanced by Run.
type Model struct {
	Terrain *heightmap.Terrain
	Active  Route

	paths [2][]heightmap.Position
	found [2]bool
	dist  [2]int
	onto  [2]map[heightmap.Position]heightmap.Position
}

// NewModel runs both searches over t. opts are passed to every search; the
// path option is always added.
func NewModel(t *heightmap.Terrain, opts ...climb.Option) (*Model, error) {
	if t == nil || t.Grid == nil {
		return nil, climb.ErrNilGrid
	}
	m := &Model{Terrain: t}
	withPath := append(append([]climb.Option(nil), opts...), climb.WithReturnPath())

	res, err := climb.ShortestPath(t.Grid, t.Start, t.Goal, withPath...)
	if err != nil {
		return nil, fmt.Errorf("view: designated route: %w", err)
	}
	m.set(RouteDesignated, res)

	multi, err := climb.Minimize(t.Grid, heightmap.AtElevation(0), t.Goal, opts...)
	if err != nil {
		return nil, fmt.Errorf("view: lowest route: %w", err)
	}
	if multi.Found {
		res, err = climb.ShortestPath(t.Grid, multi.Start, t.Goal, withPath...)
		if err != nil {
			return nil, fmt.Errorf("view: lowest route: %w", err)
		}
		m.set(RouteLowest, res)
	}
	return m, nil
}

func (m *Model) set(r Route, res climb.Result) {
	m.found[r] = res.Found
	m.dist[r] = res.Distance
	m.paths[r] = res.Path
	m.onto[r] = make(map[heightmap.Position]heightmap.Position, len(res.Path))
	for i := 0; i+1 < len(res.Path); i++ {
		m.onto[r][res.Path[i]] = res.Path[i+1]
	}
}

// Toggle switches the active route.
func (m *Model) Toggle() {
	m.Active = 1 - m.Active
}

// Path returns the active route from its start to the goal, or nil when the
// goal is unreachable from that start.
func (m *Model) Path() []heightmap.Position {
	return m.paths[m.Active]
}

// Distance reports the step count of the active route.
func (m *Model) Distance() (int, bool) {
	return m.dist[m.Active], m.found[m.Active]
}

// Status is the caption drawn above the map.
func (m *Model) Status() string {
	d, ok := m.Distance()
	if !ok {
		return fmt.Sprintf("%s: unreachable   [tab] switch  [q] quit", m.Active)
	}
	return fmt.Sprintf("%s: %d steps   [tab] switch  [q] quit", m.Active, d)
}

// next reports the cell after p on the active route.
func (m *Model) next(p heightmap.Position) (heightmap.Position, bool) {
	q, ok := m.onto[m.Active][p]
	return q, ok
}
