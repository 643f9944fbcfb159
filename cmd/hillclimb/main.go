// Command hillclimb answers fewest-steps questions about heightmaps.
//
//	hillclimb solve [file]   print both answers for a heightmap (stdin if no file)
//	hillclimb serve          run the HTTP API
//	hillclimb view [file]    browse the routes in the terminal
//	hillclimb render [file]  write the route as a PNG
//
// Settings come from HILLCLIMB_* environment variables, a .env file in the
// working directory, or the TOML file named by --config.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/config"
	"github.com/katalvlaran/hillclimb/heightmap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	configFile string
	envFile    string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "hillclimb",
		Short:        "Fewest-steps search over heightmaps",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "TOML settings file")
	root.PersistentFlags().StringVar(&a.envFile, "env", "", ".env file to load instead of ./.env")
	root.MarkFlagsMutuallyExclusive("config", "env")

	root.AddCommand(
		newSolveCmd(a),
		newServeCmd(a),
		newViewCmd(a),
		newRenderCmd(a),
	)
	return root
}

// load resolves settings and installs the process logger.
func (a *app) load(logOut io.Writer) error {
	var err error
	switch {
	case a.configFile != "":
		a.cfg, err = config.LoadTOML(a.configFile)
	case a.envFile != "":
		a.cfg, err = config.LoadFile(a.envFile)
	default:
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	a.logger = a.cfg.NewLogger(logOut)
	slog.SetDefault(a.logger)
	return nil
}

// readTerrain parses the file named by args[0], or stdin when args is empty.
func readTerrain(cmd *cobra.Command, args []string) (*heightmap.Terrain, error) {
	if len(args) == 0 {
		return heightmap.Parse(cmd.InOrStdin())
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := heightmap.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return t, nil
}
