package main

import (
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"typeahead/internal/catalog"
	"typeahead/internal/eventbus"
	"typeahead/internal/server"
)

func newServeCmd(configPath *string, overlay *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a search endpoint",
		Long:  "Serves GET /search?q= (JSON), GET /preview?q= (HTML), POST /deliver (side-channel envelopes) and GET /health.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd.Context(), *configPath, overlay, false)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			cat, err := catalog.Open(rt.cfg.Catalog.Path)
			if err != nil {
				return serr.Wrap(err, "failed to open catalog", "path", rt.cfg.Catalog.Path)
			}
			defer cat.Close()

			bus := eventbus.New(rt.ctx)
			defer bus.Close()

			srv := server.New(rt.ctx, cat, bus, server.Options{
				Address: rt.cfg.Server.Address,
				Verbose: rt.cfg.Server.Verbose,
				Limit:   rt.cfg.Catalog.Limit,
				Channel: rt.cfg.Widget.Channel,
			})

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Run() }()

			select {
			case err := <-errCh:
				return serr.Wrap(err, "search endpoint stopped", "address", rt.cfg.Server.Address)
			case <-rt.ctx.Done():
				rt.log.Info().Msg("shutting down")
				return nil
			}
		},
	}

	cmd.Flags().Bool("verbose", false, "log every request")
	bind(overlay, cmd.Flags().Lookup("verbose"), "server.verbose")
	return cmd
}
