package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"typeahead/internal/config"
)

func newConfigCmd(configPath *string, overlay *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	service := func() config.ConfigService {
		if *configPath != "" {
			return config.NewConfigServiceAt(*configPath)
		}
		return config.NewConfigService()
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service()
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return serr.New("config already exists at " + svc.Path() + " (use --force to overwrite)")
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", svc.Path())
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := service().Load()
			if err != nil {
				return err
			}
			config.ApplyOverlay(cfg, overlay)

			data, err := toml.Marshal(cfg)
			if err != nil {
				return serr.Wrap(err, "failed to marshal config")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
