package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/climb"
	"github.com/katalvlaran/hillclimb/view"
)

func newViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse both routes in the terminal (tab switches, q quits)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("view reads the terminal for keys; pass the heightmap as a file")
			}
			m, err := a.model(cmd, args)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			view.Run(screen, m)
			return nil
		},
	}
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		out    string
		scale  int
		lowest bool
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Write the map and a route as a PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model(cmd, args)
			if err != nil {
				return err
			}
			if lowest {
				m.Active = view.RouteLowest
			}
			if err := view.SavePNG(m, scale, out); err != nil {
				return err
			}
			if d, ok := m.Distance(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d steps\n", out, m.Active, d)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, goal unreachable\n", out, m.Active)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "route.png", "output file")
	cmd.Flags().IntVar(&scale, "scale", 8, "pixels per cell")
	cmd.Flags().BoolVar(&lowest, "lowest", false, "draw the best route from any lowest cell")
	return cmd
}

// model parses the input and runs both searches with the configured strategy.
func (a *app) model(cmd *cobra.Command, args []string) (*view.Model, error) {
	t, err := readTerrain(cmd, args)
	if err != nil {
		return nil, err
	}
	return view.NewModel(t,
		climb.WithContext(cmd.Context()),
		climb.WithLogger(a.logger),
		climb.WithStrategy(a.cfg.Strategy),
		climb.WithWorkers(a.cfg.Workers),
	)
}
