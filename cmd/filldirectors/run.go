package main

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dvdenrich/internal/catalog"
	"dvdenrich/internal/enrich"
	"dvdenrich/internal/logging"
	"dvdenrich/internal/runlock"
	"dvdenrich/internal/services"
	"dvdenrich/internal/wikipedia"
)

// maxSleepSeconds bounds --sleep below the time.Duration range.
const maxSleepSeconds = float64(math.MaxInt64) / float64(time.Second)

func (f runFlags) options() (enrich.Options, error) {
	limit := catalog.Unbounded
	if f.limitSet {
		if f.limit < 0 {
			return enrich.Options{}, usageError(fmt.Sprintf("--limit must not be negative, got %d", f.limit), nil)
		}
		limit = f.limit
	}
	if f.offset < 0 {
		return enrich.Options{}, usageError(fmt.Sprintf("--offset must not be negative, got %d", f.offset), nil)
	}
	if math.IsNaN(f.sleep) || math.IsInf(f.sleep, 0) || f.sleep < 0 {
		return enrich.Options{}, usageError(fmt.Sprintf("--sleep must be a non-negative number of seconds, got %v", f.sleep), nil)
	}
	if f.sleep >= maxSleepSeconds {
		return enrich.Options{}, usageError(fmt.Sprintf("--sleep must be below %.0f seconds, got %v", maxSleepSeconds, f.sleep), nil)
	}
	return enrich.Options{
		DryRun: f.dryRun,
		Force:  f.force,
		Page:   catalog.Page{Limit: limit, Offset: f.offset},
		Sleep:  time.Duration(f.sleep * float64(time.Second)),
	}, nil
}

func runEnrich(cmd *cobra.Command, ctx *commandContext, flags runFlags, lockPath string) error {
	opts, err := flags.options()
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = services.WithRunID(runCtx, uuid.NewString())
	runLogger := logging.WithContext(runCtx, logging.NewComponentLogger(logger, "cli"))

	lock, err := runlock.Acquire(lockPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			runLogger.Warn("failed to release run lock", logging.String("lock", lock.Path()), logging.Error(err))
		}
	}()

	store, err := catalog.Open(runCtx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := wikipedia.New(
		cfg.Wikipedia.Endpoint,
		cfg.Wikipedia.UserAgent,
		wikipedia.WithTimeout(time.Duration(cfg.Wikipedia.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "wikipedia", "", err)
	}
	runner, err := enrich.NewRunner(store, wikipedia.NewResolver(client, logger), logger, opts)
	if err != nil {
		return err
	}

	runLogger.Info("starting run",
		logging.String("config", ctx.configPath),
		logging.String("driver", cfg.Database.Driver),
		logging.String("table", cfg.Database.Table),
		logging.Bool("dry_run", opts.DryRun),
		logging.Bool("force", opts.Force),
		logging.Int("limit", opts.Page.Limit),
		logging.Int("offset", opts.Page.Offset),
		logging.Duration("sleep", opts.Sleep),
	)

	summary, runErr := runner.Run(runCtx)
	if ctx.consoleOutput() && summary.Fetched > 0 {
		writeLine(cmd.OutOrStdout(), renderSummary(summary))
	}
	return runErr
}
