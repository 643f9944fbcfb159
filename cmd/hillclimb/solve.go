package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/climb"
	"github.com/katalvlaran/hillclimb/heightmap"
)

type solveFlags struct {
	strategy string
	workers  int
	path     bool
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Print the fewest steps from S and from any lowest cell",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTerrain(cmd, args)
			if err != nil {
				return err
			}
			opts, err := a.searchOptions(cmd, f)
			if err != nil {
				return err
			}
			return solve(cmd.OutOrStdout(), t, f.path, opts...)
		},
	}
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "multi-source strategy: reverse or per-candidate (default from config)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "concurrent searches for per-candidate (default from config)")
	cmd.Flags().BoolVar(&f.path, "path", false, "also print the route from S")
	return cmd
}

// searchOptions merges flags over the loaded config.
func (a *app) searchOptions(cmd *cobra.Command, f solveFlags) ([]climb.Option, error) {
	strategy := a.cfg.Strategy
	if f.strategy != "" {
		s, err := climb.ParseStrategy(f.strategy)
		if err != nil {
			return nil, err
		}
		strategy = s
	}
	workers := a.cfg.Workers
	if f.workers != 0 {
		workers = f.workers
	}
	return []climb.Option{
		climb.WithContext(cmd.Context()),
		climb.WithLogger(a.logger),
		climb.WithStrategy(strategy),
		climb.WithWorkers(workers),
	}, nil
}

func solve(w io.Writer, t *heightmap.Terrain, withPath bool, opts ...climb.Option) error {
	single := opts
	if withPath {
		single = append(append([]climb.Option(nil), opts...), climb.WithReturnPath())
	}
	res, err := climb.ShortestPath(t.Grid, t.Start, t.Goal, single...)
	if err != nil {
		return err
	}
	if res.Found {
		fmt.Fprintf(w, "fewest steps from S: %d\n", res.Distance)
	} else {
		fmt.Fprintln(w, "fewest steps from S: goal unreachable")
	}

	multi, err := climb.Minimize(t.Grid, heightmap.AtElevation(0), t.Goal, opts...)
	if err != nil {
		return err
	}
	if multi.Found {
		fmt.Fprintf(w, "fewest steps from any a: %d (start %v, %d candidates, %s)\n",
			multi.Distance, multi.Start, multi.Candidates, multi.Strategy)
	} else {
		fmt.Fprintf(w, "fewest steps from any a: no candidate reaches the goal (%d candidates)\n", multi.Candidates)
	}

	if withPath && res.Found {
		steps := make([]string, len(res.Path))
		for i, p := range res.Path {
			steps[i] = p.String()
		}
		fmt.Fprintf(w, "route: %s\n", strings.Join(steps, " "))
	}
	return nil
}
