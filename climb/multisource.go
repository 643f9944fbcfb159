package climb

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hillclimb/heightmap"
)

// Minimize returns the minimum ShortestPath distance to goal over every
// position of g whose elevation satisfies pred. Candidates that cannot reach
// the goal are ignored; if none can, MultiResult.Found is false and Distance
// is Unreachable.
//
// Both strategies report identical results:
//
//   - StrategyReverse (default): a single backward traversal from goal with
//     the inverted climb rule, then a row-major scan of the candidates.
//     O(W·H·log(W·H)) regardless of how many candidates match.
//   - StrategyPerCandidate: one forward search per candidate on at most
//     Options.Workers goroutines. O(C·W·H·log(W·H)) for C candidates.
//
// Ties between candidates at the same distance go to the first one in
// row-major order.
//
// Errors: ErrOptionViolation, ErrNilGrid, ErrNilPredicate,
// heightmap.ErrOutOfBounds for goal, ctx.Err(), and ConsistencyFault.
func Minimize(g *heightmap.Grid, pred func(elevation int) bool, goal heightmap.Position, opts ...Option) (MultiResult, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return MultiResult{}, err
	}
	if g == nil {
		return MultiResult{}, ErrNilGrid
	}
	if pred == nil {
		return MultiResult{}, ErrNilPredicate
	}
	if _, err = g.ElevationAt(goal); err != nil {
		return MultiResult{}, fmt.Errorf("climb: goal: %w", err)
	}

	ctx, span := tracer().Start(cfg.Ctx, "climb.Minimize")
	defer span.End()
	span.SetAttributes(
		attribute.String("climb.goal", goal.String()),
		attribute.String("climb.strategy", cfg.Strategy.String()),
	)

	began := time.Now()
	var (
		res      MultiResult
		expanded int
	)
	switch cfg.Strategy {
	case StrategyPerCandidate:
		res, expanded, err = minimizePerCandidate(ctx, g, pred, goal, cfg)
	default:
		res, expanded, err = minimizeReverse(ctx, g, pred, goal, cfg)
	}
	observe(kindMulti, res.Found, expanded, time.Since(began), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MultiResult{}, err
	}
	res.Strategy = cfg.Strategy

	span.SetAttributes(
		attribute.Int("climb.candidates", res.Candidates),
		attribute.Bool("climb.found", res.Found),
		attribute.Int("climb.distance", res.Distance),
	)
	cfg.Logger.LogAttrs(ctx, slog.LevelDebug, "climb minimize finished",
		slog.String("goal", goal.String()),
		slog.String("strategy", cfg.Strategy.String()),
		slog.Int("candidates", res.Candidates),
		slog.Bool("found", res.Found),
		slog.Int("distance", res.Distance),
		slog.String("best_start", res.Start.String()),
	)

	return res, nil
}

// best accumulates the minimum over candidates. Ties keep the row-major first.
type best struct {
	res MultiResult
}

func newBest() best {
	return best{res: MultiResult{Distance: Unreachable}}
}

func (b *best) offer(start heightmap.Position, dist int) {
	switch {
	case !b.res.Found, dist < b.res.Distance,
		dist == b.res.Distance && start.Less(b.res.Start):
		b.res.Distance = dist
		b.res.Start = start
		b.res.Found = true
	}
}

// minimizeReverse walks backward from goal once and reads off every candidate.
func minimizeReverse(ctx context.Context, g *heightmap.Grid, pred func(int) bool, goal heightmap.Position, cfg Options) (MultiResult, int, error) {
	// the backward walk has no single route to rebuild
	walk := cfg
	walk.ReturnPath = false

	r := newRunner(ctx, g, backward, goal, goal, walk)
	if _, _, err := r.run(); err != nil {
		return MultiResult{}, r.expanded, err
	}

	b := newBest()
	for p := range g.CellsMatching(pred) {
		b.res.Candidates++
		if d := r.distanceAt(p); d != Unreachable {
			b.offer(p, d)
		}
	}

	return b.res, r.expanded, nil
}

// minimizePerCandidate fans out one forward search per candidate.
// Each search owns its state; only the reduction is locked.
func minimizePerCandidate(ctx context.Context, g *heightmap.Grid, pred func(int) bool, goal heightmap.Position, cfg Options) (MultiResult, int, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)

	single := cfg
	single.ReturnPath = false

	var (
		mu         sync.Mutex
		b          = newBest()
		expanded   int
		candidates int
	)
	for p := range g.CellsMatching(pred) {
		candidates++
		start := p
		eg.Go(func() error {
			res, err := shortestPath(egCtx, g, start, goal, single)
			mu.Lock()
			defer mu.Unlock()
			expanded += res.Expanded
			if err != nil {
				return fmt.Errorf("climb: candidate %v: %w", start, err)
			}
			if res.Found {
				b.offer(start, res.Distance)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return MultiResult{}, expanded, err
	}
	b.res.Candidates = candidates

	return b.res, expanded, nil
}
