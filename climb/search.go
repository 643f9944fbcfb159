package climb

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/hillclimb/heightmap"
)

// ShortestPath returns the minimum number of steps from start to goal on g
// under the climb rule. It accepts functional options (WithContext,
// WithReturnPath, WithOnDiscover, WithOnExpand, WithLogger).
//
// Returns:
//
//   - Result.Found == false and Distance == Unreachable if no path exists.
//     An unreachable goal is a normal outcome, not an error.
//   - Distance 0 immediately when start == goal.
//
// Errors (in order of validation):
//  1. ErrOptionViolation for invalid options.
//  2. ErrNilGrid if g is nil.
//  3. heightmap.ErrOutOfBounds if start or goal lies outside g.
//  4. ctx.Err() if the context is done between frontier pops.
//  5. *ConsistencyFault (matching ErrConsistencyFault) if the visited-distance
//     invariant breaks. The search is aborted; there is no recovery.
//
// Complexity:
//
//   - Time:  O(W·H·log(W·H))
//   - Space: O(W·H)
func ShortestPath(g *heightmap.Grid, start, goal heightmap.Position, opts ...Option) (Result, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return Result{}, err
	}
	if g == nil {
		return Result{}, ErrNilGrid
	}
	if err = checkBounds(g, start, goal); err != nil {
		return Result{}, err
	}

	ctx, span := tracer().Start(cfg.Ctx, "climb.ShortestPath")
	defer span.End()
	span.SetAttributes(
		attribute.String("climb.start", start.String()),
		attribute.String("climb.goal", goal.String()),
	)

	began := time.Now()
	res, err := shortestPath(ctx, g, start, goal, cfg)
	observe(kindSingle, res.Found, res.Expanded, time.Since(began), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	span.SetAttributes(
		attribute.Bool("climb.found", res.Found),
		attribute.Int("climb.distance", res.Distance),
		attribute.Int("climb.expanded", res.Expanded),
	)
	cfg.Logger.LogAttrs(ctx, slog.LevelDebug, "climb search finished",
		slog.String("start", start.String()),
		slog.String("goal", goal.String()),
		slog.Bool("found", res.Found),
		slog.Int("distance", res.Distance),
		slog.Int("expanded", res.Expanded),
	)

	return res, nil
}

// shortestPath runs the forward traversal on validated input.
func shortestPath(ctx context.Context, g *heightmap.Grid, start, goal heightmap.Position, cfg Options) (Result, error) {
	if start == goal {
		res := Result{Distance: 0, Found: true}
		if cfg.ReturnPath {
			res.Path = []heightmap.Position{start}
		}
		return res, nil
	}

	r := newRunner(ctx, g, forward, start, goal, cfg)
	dist, found, err := r.run()
	if err != nil {
		return Result{Expanded: r.expanded}, err
	}
	res := Result{Distance: dist, Found: found, Expanded: r.expanded}
	if found && cfg.ReturnPath {
		res.Path = r.path()
	}

	return res, nil
}

// checkBounds validates both endpoints against g.
func checkBounds(g *heightmap.Grid, start, goal heightmap.Position) error {
	if _, err := g.ElevationAt(start); err != nil {
		return fmt.Errorf("climb: start: %w", err)
	}
	if _, err := g.ElevationAt(goal); err != nil {
		return fmt.Errorf("climb: goal: %w", err)
	}
	return nil
}

// runner holds the mutable state of a single traversal. Nothing in it is
// shared with any other traversal over the same grid.
type runner struct {
	ctx    context.Context
	g      *heightmap.Grid
	rule   climbRule
	dir    direction
	source heightmap.Position
	cfg    Options

	dist  []int // visited set: row-major index → first-seen distance, -1 if unseen
	prev  []int // row-major index → predecessor index, only with ReturnPath
	front frontier
	seq   uint64

	expanded int
	reached  int // predecessor of the goal once found, forward only
	buf      []heightmap.Position
}

// newRunner allocates per-traversal state. For a backward traversal source is the goal.
func newRunner(ctx context.Context, g *heightmap.Grid, dir direction, source, goal heightmap.Position, cfg Options) *runner {
	n := g.Len()
	r := &runner{
		ctx:     ctx,
		g:       g,
		rule:    climbRule{g: g, goal: goal},
		dir:     dir,
		source:  source,
		cfg:     cfg,
		dist:    make([]int, n),
		front:   newMinFrontier(n),
		reached: -1,
		buf:     make([]heightmap.Position, 0, 4),
	}
	for i := range r.dist {
		r.dist[i] = Unreachable
	}
	if cfg.ReturnPath {
		r.prev = make([]int, n)
	}

	return r
}

// run drives the traversal until the frontier empties or, going forward,
// the goal is reached. It returns the goal distance and whether it was reached.
func (r *runner) run() (int, bool, error) {
	r.record(r.source, 0, -1)

	for r.front.Len() > 0 {
		// cancellation check (once per pop)
		select {
		case <-r.ctx.Done():
			return Unreachable, false, r.ctx.Err()
		default:
		}

		cur := r.front.pop()
		r.expanded++
		r.cfg.OnExpand(cur.pos, cur.dist)

		next := cur.dist + 1
		r.buf = r.g.AppendNeighbors(r.buf[:0], cur.pos)
		for _, nb := range r.buf {
			if !r.rule.canStep(r.dir, cur.pos, nb) {
				continue
			}
			// first discovery of the goal is minimal: pops are in non-decreasing order
			if r.dir == forward && nb == r.rule.goal {
				r.reached = r.g.Index(cur.pos)
				return next, true, nil
			}
			if err := r.offer(cur.pos, nb, next); err != nil {
				return Unreachable, false, err
			}
		}
	}

	return Unreachable, false, nil
}

// offer records nb at distance d if unseen. A recorded distance above d
// means the frontier popped out of order.
func (r *runner) offer(from, nb heightmap.Position, d int) error {
	idx := r.g.Index(nb)
	recorded := r.dist[idx]
	switch {
	case recorded == Unreachable:
		r.record(nb, d, r.g.Index(from))
	case recorded > d:
		return r.fault(from, nb, recorded, d)
	}
	return nil
}

// record inserts p into the visited set and the frontier.
func (r *runner) record(p heightmap.Position, d, parent int) {
	idx := r.g.Index(p)
	r.dist[idx] = d
	if r.prev != nil {
		r.prev[idx] = parent
	}
	r.cfg.OnDiscover(p, d)
	r.front.push(entry{dist: d, seq: r.seq, pos: p})
	r.seq++
}

// fault logs and returns a ConsistencyFault.
func (r *runner) fault(from, at heightmap.Position, recorded, offered int) error {
	f := &ConsistencyFault{At: at, From: from, Recorded: recorded, Offered: offered}
	consistencyFaults.Inc()
	r.cfg.Logger.LogAttrs(r.ctx, slog.LevelError, "visited distance invariant violated",
		slog.String("position", at.String()),
		slog.String("from", from.String()),
		slog.Int("recorded", recorded),
		slog.Int("offered", offered),
		slog.String("source", r.source.String()),
		slog.String("goal", r.rule.goal.String()),
		slog.Int("expanded", r.expanded),
	)
	return f
}

// path rebuilds source..goal from the predecessor links of a forward run.
func (r *runner) path() []heightmap.Position {
	if r.prev == nil || r.reached < 0 {
		return nil
	}
	out := []heightmap.Position{r.rule.goal}
	for at := r.reached; at >= 0; at = r.prev[at] {
		out = append(out, r.g.Position(at))
	}
	slices.Reverse(out)

	return out
}

// distanceAt returns the recorded distance of p, or Unreachable.
func (r *runner) distanceAt(p heightmap.Position) int {
	return r.dist[r.g.Index(p)]
}
