package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dvdenrich/internal/runlock"
	"dvdenrich/internal/services"
)

// runFlags mirrors the job's command line switches.
type runFlags struct {
	dryRun bool
	limit  int
	offset int
	force  bool
	sleep  float64

	limitSet bool
}

func newRootCommand() *cobra.Command {
	var configFlag, logLevelFlag, logFormatFlag, logFileFlag, lockFlag string
	var flags runFlags

	ctx := newCommandContext(&configFlag, &logLevelFlag, &logFormatFlag, &logFileFlag)

	rootCmd := &cobra.Command{
		Use:   "filldirectors",
		Short: "Fill missing DVD directors from Wikipedia",
		Long: "filldirectors walks the dvds table in key order, looks up each title on\n" +
			"Wikipedia and stores the director it finds. Rows that already have a\n" +
			"director are left alone unless --force is given.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		Args: maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.limitSet = cmd.Flags().Changed("limit")
			return runEnrich(cmd, ctx, flags, lockFlag)
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("", err)
	})

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default ../api/config.ini)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Override the configured log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also append log records to this file")

	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Do not write updates, only show what would change")
	rootCmd.Flags().IntVar(&flags.limit, "limit", 0, "Process at most N rows")
	rootCmd.Flags().IntVar(&flags.offset, "offset", 0, "Skip the first N rows")
	rootCmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing director values")
	rootCmd.Flags().Float64Var(&flags.sleep, "sleep", 1.0, "Seconds to sleep between rows")
	rootCmd.Flags().StringVar(&lockFlag, "lock-file", runlock.DefaultPath(), "Lock file preventing concurrent runs")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// maxArgs rejects surplus positional arguments as a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usageError(fmt.Sprintf("unexpected argument %q", args[n]), nil)
		}
		return nil
	}
}

func usageError(message string, err error) error {
	return services.Wrap(services.ErrUsage, "cli", "", message, err)
}
