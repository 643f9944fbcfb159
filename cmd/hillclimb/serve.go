package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/hillclimb/api"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			gin.SetMode(a.cfg.GinMode)

			search := api.NewSearchController(api.SearchConfig{
				Strategy: a.cfg.Strategy,
				Workers:  a.cfg.Workers,
				Timeout:  a.cfg.SearchTimeout,
				MaxCells: a.cfg.MaxCells,
				Logger:   a.logger,
			})
			router := api.NewRouter(api.Config{
				Addr:        a.cfg.Addr,
				BaseURL:     a.cfg.BaseURL,
				Controllers: []api.Controller{search},
				Logger:      a.logger,
			})
			return router.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
