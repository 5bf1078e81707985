package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/serr"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"typeahead/internal/app"
	"typeahead/internal/catalog"
	"typeahead/internal/config"
	"typeahead/internal/eventbus"
	"typeahead/internal/logging"
	"typeahead/internal/server"
	"typeahead/internal/ui"
)

// runtime bundles what every command needs once configuration is resolved
type runtime struct {
	cfg     *config.Config
	log     zerolog.Logger
	ctx     context.Context
	cleanup func()
}

func newRootCmd() *cobra.Command {
	var configPath string
	overlay := config.NewOverlay()

	rootCmd := &cobra.Command{
		Use:           "typeahead",
		Short:         "Debounced search box with a results dropdown",
		Long:          "Runs a terminal search widget over the demo catalog. With --endpoint the widget fetches from a search endpoint itself; otherwise searches are answered by the host.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup(cmd.Context(), configPath, overlay, true)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			listen, _ := cmd.Flags().GetBool("listen")
			return runTUI(rt, listen)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/typeahead/config.toml)")
	pf.String("catalog", "", "catalog database path")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("log-file", "", "log file path")
	pf.String("address", "", "search endpoint listen address")
	bind(overlay, pf.Lookup("catalog"), "catalog.path")
	bind(overlay, pf.Lookup("log-level"), "log.level")
	bind(overlay, pf.Lookup("log-file"), "log.file")
	bind(overlay, pf.Lookup("address"), "server.address")

	f := rootCmd.Flags()
	f.String("endpoint", "", "search endpoint; enables self-fetch")
	f.Int("debounce", 0, "debounce delay in milliseconds")
	f.String("channel", "", "side-channel name for result deliveries")
	f.Bool("open", false, "start with the dropdown open")
	f.Bool("listen", false, "also serve the search endpoint")
	bind(overlay, f.Lookup("endpoint"), "widget.endpoint")
	bind(overlay, f.Lookup("debounce"), "widget.debounce_ms")
	bind(overlay, f.Lookup("channel"), "widget.channel")
	bind(overlay, f.Lookup("open"), "widget.initially_open")

	rootCmd.AddCommand(newServeCmd(&configPath, overlay))
	rootCmd.AddCommand(newConfigCmd(&configPath, overlay))
	rootCmd.AddCommand(newCatalogCmd(&configPath, overlay))
	return rootCmd
}

// bind routes a flag onto its config key in the overlay
func bind(v *viper.Viper, flag *pflag.Flag, key string) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err) // only fails for a nil flag
	}
}

// setup loads configuration, applies env and flag overrides and opens the log
func setup(parent context.Context, configPath string, overlay *viper.Viper, tui bool) (*runtime, error) {
	svc := config.NewConfigService()
	if configPath != "" {
		svc = config.NewConfigServiceAt(configPath)
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, serr.Wrap(err, "failed to load config", "path", svc.Path())
	}
	config.ApplyOverlay(cfg, overlay)

	logCfg := logging.Config{Level: cfg.Log.Level, File: cfg.Log.File, Format: cfg.Log.Format}
	if !tui && cfg.Log.File == "" {
		logCfg.Format = "console"
	}
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open log", "file", cfg.Log.File)
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	ctx = logging.WithContext(ctx, logger)

	logger.Info().Str("config", svc.Path()).Str("version", version).Msg("typeahead starting")
	return &runtime{
		cfg: cfg,
		log: logger,
		ctx: ctx,
		cleanup: func() {
			stop()
			closeLog()
		},
	}, nil
}

func runTUI(rt *runtime, listen bool) error {
	cfg := rt.cfg
	ctx, cancel := context.WithCancel(rt.ctx)
	defer cancel()

	bus := eventbus.New(ctx)
	defer bus.Close()

	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return serr.Wrap(err, "failed to open catalog", "path", cfg.Catalog.Path)
	}
	defer cat.Close()

	opts := ui.OptionsFromConfig(cfg.Widget)
	opts.Bus = bus
	widget := ui.New(ctx, opts)
	defer widget.Shutdown()

	// delegated widgets are answered by the host from the catalog
	var searcher app.Searcher
	if widget.Strategy() == ui.StrategyDelegated {
		searcher = cat
	}
	model := app.New(ctx, widget, searcher, cfg.Catalog.Limit)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if err != nil && ctx.Err() == nil {
			return serr.Wrap(err, "ui exited")
		}
		return nil
	})

	if listen {
		srv := server.New(gctx, cat, bus, server.Options{
			Address: cfg.Server.Address,
			Verbose: cfg.Server.Verbose,
			Limit:   cfg.Catalog.Limit,
			Channel: cfg.Widget.Channel,
		})
		g.Go(func() error {
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Run() }()
			select {
			case err := <-errCh:
				p.Quit()
				return serr.Wrap(err, "search endpoint stopped", "address", cfg.Server.Address)
			case <-gctx.Done():
				return nil
			}
		})
	}

	return g.Wait()
}
