// Package climb defines core types, configuration options, and sentinel
// errors for climb-constrained shortest-path search over a heightmap.Grid.
package climb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/hillclimb/heightmap"
)

// Sentinel errors returned by the climb package.
var (
	// ErrNilGrid indicates that a nil *heightmap.Grid was passed.
	ErrNilGrid = errors.New("climb: grid is nil")

	// ErrNilPredicate indicates that Minimize was called without a candidate predicate.
	ErrNilPredicate = errors.New("climb: candidate predicate is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("climb: invalid option supplied")

	// ErrConsistencyFault indicates that a position already recorded in the
	// visited set was offered again at a strictly smaller distance. The
	// frontier failed to hand out positions in non-decreasing distance order.
	// This is a defect, never a property of the input.
	ErrConsistencyFault = errors.New("climb: visited distance invariant violated")
)

// Unreachable is the Distance reported when no valid path exists.
const Unreachable = -1

// ConsistencyFault carries the full context of a visited-distance violation.
// It matches ErrConsistencyFault under errors.Is.
type ConsistencyFault struct {
	At       heightmap.Position // position whose recorded distance was undercut
	From     heightmap.Position // position being expanded when the fault was seen
	Recorded int                // distance stored when At was first reached
	Offered  int                // strictly smaller distance offered via From
}

// Error implements error.
func (f *ConsistencyFault) Error() string {
	return fmt.Sprintf("%v: %v recorded at %d, offered %d via %v",
		ErrConsistencyFault, f.At, f.Recorded, f.Offered, f.From)
}

// Unwrap lets errors.Is match ErrConsistencyFault.
func (f *ConsistencyFault) Unwrap() error { return ErrConsistencyFault }

// Strategy selects how Minimize evaluates its candidate starts.
type Strategy int

const (
	// StrategyReverse runs one backward traversal from the goal and reads
	// every candidate's distance off the result.
	StrategyReverse Strategy = iota

	// StrategyPerCandidate runs an independent forward search per candidate
	// on a bounded pool of workers.
	StrategyPerCandidate
)

// String returns the configuration name of s.
func (s Strategy) String() string {
	switch s {
	case StrategyReverse:
		return "reverse"
	case StrategyPerCandidate:
		return "per-candidate"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a configuration name back to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "reverse", "":
		return StrategyReverse, nil
	case "per-candidate":
		return StrategyPerCandidate, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, name)
	}
}

// Options configures ShortestPath and Minimize.
//
// Ctx        – cancellation and deadlines, checked between frontier pops.
// ReturnPath – if true, ShortestPath reconstructs the route into Result.Path.
// OnDiscover – called once per position when it first enters the visited set.
// OnExpand   – called for each position popped from the frontier.
// Logger     – receives consistency faults (error) and search summaries (debug).
// Strategy   – multi-source evaluation strategy used by Minimize.
// Workers    – concurrent searches used by StrategyPerCandidate.
//
// Minimize passes the hooks to its internal traversals. Under
// StrategyReverse the reported distances are measured from the goal; under
// StrategyPerCandidate the hooks are called from several goroutines at once.
type Options struct {
	Ctx        context.Context
	ReturnPath bool
	OnDiscover func(p heightmap.Position, dist int)
	OnExpand   func(p heightmap.Position, dist int)
	Logger     *slog.Logger
	Strategy   Strategy
	Workers    int

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns an Options struct initialized with:
//   - Ctx:        context.Background()
//   - ReturnPath: false
//   - OnDiscover, OnExpand: no-op hooks
//   - Logger:     slog.Default()
//   - Strategy:   StrategyReverse
//   - Workers:    runtime.NumCPU()
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		OnDiscover: func(heightmap.Position, int) {},
		OnExpand:   func(heightmap.Position, int) {},
		Logger:     slog.Default(),
		Strategy:   StrategyReverse,
		Workers:    runtime.NumCPU(),
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithReturnPath enables reconstruction of the route in Result.Path.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithOnDiscover registers a callback run when a position is first recorded.
func WithOnDiscover(fn func(p heightmap.Position, dist int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDiscover = fn
		}
	}
}

// WithOnExpand registers a callback run when a position is popped for expansion.
func WithOnExpand(fn func(p heightmap.Position, dist int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithStrategy selects the Minimize strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		if s != StrategyReverse && s != StrategyPerCandidate {
			o.err = fmt.Errorf("%w: unknown strategy %d", ErrOptionViolation, int(s))
			return
		}
		o.Strategy = s
	}
}

// WithWorkers bounds the number of concurrent searches of StrategyPerCandidate.
//
//	n > 0: at most n searches in flight
//	n < 1: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// buildOptions applies opts over DefaultOptions and returns the first recorded violation.
func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.err
}

// Result is the outcome of a single-source search.
//
//   - Distance: minimum number of steps, or Unreachable.
//   - Found:    false when no valid path exists; this is not an error.
//   - Path:     start..goal inclusive, only with WithReturnPath and Found.
//   - Expanded: number of positions popped from the frontier.
type Result struct {
	Distance int
	Found    bool
	Path     []heightmap.Position
	Expanded int
}

// MultiResult is the outcome of Minimize.
//
//   - Distance:   smallest distance over all candidates, or Unreachable.
//   - Found:      false when no candidate reaches the goal.
//   - Start:      the candidate achieving Distance; ties go to the first in row-major order.
//   - Candidates: number of positions that satisfied the predicate.
type MultiResult struct {
	Distance   int
	Found      bool
	Start      heightmap.Position
	Candidates int
	Strategy   Strategy
}
