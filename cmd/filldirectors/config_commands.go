package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dvdenrich/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init [PATH]",
		Short:       "Create a sample configuration file",
		Long:        "Write a sample configuration to PATH (default ../api/config.ini). A .toml\nextension selects the TOML flavour.",
		Args:        maxArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := config.DefaultConfigPath()
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				target = strings.TrimSpace(args[0])
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			target = expanded

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the [database] section (or export DVDS_DB_PASSWORD) before running filldirectors.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Args:  maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			fmt.Fprintf(out, "Database: %s %s (table %s)\n", cfg.Database.Driver, databaseLabel(cfg), cfg.Database.Table)
			fmt.Fprintf(out, "Wikipedia endpoint: %s\n", cfg.Wikipedia.Endpoint)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func databaseLabel(cfg *config.Config) string {
	if cfg.Database.Driver == config.DriverSQLite {
		return cfg.Database.Name
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
}
