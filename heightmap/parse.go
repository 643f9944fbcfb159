package heightmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for Parse.
var (
	// ErrMissingMarker indicates the start or goal marker is absent.
	ErrMissingMarker = errors.New("heightmap: marker not found")
	// ErrDuplicateMarker indicates the start or goal marker appears more than once.
	ErrDuplicateMarker = errors.New("heightmap: marker appears more than once")
	// ErrBadSymbol indicates a character outside 'a'..'z', 'S' and 'E'.
	ErrBadSymbol = errors.New("heightmap: unexpected symbol")
)

// Markers of the textual format.
const (
	StartMarker = 'S'
	GoalMarker  = 'E'
)

// Terrain is a parsed heightmap: the Grid plus the resolved start and goal.
type Terrain struct {
	Grid  *Grid
	Start Position
	Goal  Position
}

// Parse reads one grid row per line from r. Letters 'a'..'z' map to
// elevations 0..25; StartMarker stands at elevation 0 and GoalMarker at 25.
// Trailing blank lines and carriage returns are ignored.
//
// Exactly one StartMarker and one GoalMarker must be present, otherwise
// ErrMissingMarker or ErrDuplicateMarker is returned. Any other symbol
// yields ErrBadSymbol with its line and column. Shape errors come from NewGrid.
func Parse(r io.Reader) (*Terrain, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("heightmap: read: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var (
		start, goal         Position
		haveStart, haveGoal bool
	)
	values := make([][]int, len(lines))
	for y, line := range lines {
		row := make([]int, 0, len(line))
		for x, c := range []byte(line) {
			p := Position{X: x, Y: y}
			switch {
			case c == StartMarker:
				if haveStart {
					return nil, fmt.Errorf("%w: %q at %v and %v", ErrDuplicateMarker, StartMarker, start, p)
				}
				start, haveStart = p, true
				row = append(row, 0)
			case c == GoalMarker:
				if haveGoal {
					return nil, fmt.Errorf("%w: %q at %v and %v", ErrDuplicateMarker, GoalMarker, goal, p)
				}
				goal, haveGoal = p, true
				row = append(row, DefaultPeak)
			case c >= 'a' && c <= 'z':
				row = append(row, int(c-'a'))
			default:
				return nil, fmt.Errorf("%w: %q at line %d column %d", ErrBadSymbol, c, y+1, x+1)
			}
		}
		values[y] = row
	}

	g, err := NewGrid(values)
	if err != nil {
		return nil, err
	}
	if !haveStart {
		return nil, fmt.Errorf("%w: %q", ErrMissingMarker, StartMarker)
	}
	if !haveGoal {
		return nil, fmt.Errorf("%w: %q", ErrMissingMarker, GoalMarker)
	}

	return &Terrain{Grid: g, Start: start, Goal: goal}, nil
}

// ParseString is Parse over an in-memory heightmap.
func ParseString(s string) (*Terrain, error) {
	return Parse(strings.NewReader(s))
}

// Symbol returns the character used to draw p: the start or goal marker,
// or the elevation letter. Elevations beyond 'z' are drawn as '#'.
func (t *Terrain) Symbol(p Position) byte {
	switch p {
	case t.Start:
		return StartMarker
	case t.Goal:
		return GoalMarker
	}
	e := t.Grid.elevation(p)
	if e > DefaultPeak {
		return '#'
	}
	return byte('a' + e)
}

// String renders the terrain back into its textual form.
func (t *Terrain) String() string {
	var b strings.Builder
	b.Grow((t.Grid.Width + 1) * t.Grid.Height)
	for y := 0; y < t.Grid.Height; y++ {
		for x := 0; x < t.Grid.Width; x++ {
			b.WriteByte(t.Symbol(Position{X: x, Y: y}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
