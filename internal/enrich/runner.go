package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dvdenrich/internal/catalog"
	"dvdenrich/internal/logging"
	"dvdenrich/internal/services"
)

// DefaultSleep is the pause between rows when none is configured.
const DefaultSleep = time.Second

// Store is the catalogue access the runner needs.
type Store interface {
	FetchRecords(ctx context.Context, page catalog.Page) ([]catalog.Record, error)
	UpdateDirector(ctx context.Context, key int64, director string) error
}

// Resolver finds the director of a film. The boolean is false when no credit
// was found for any reason.
type Resolver interface {
	ResolveDirector(ctx context.Context, title, year string) (string, bool)
}

// Options controls a single run.
type Options struct {
	DryRun bool
	Force  bool
	Page   catalog.Page
	Sleep  time.Duration
}

// Runner processes catalogue rows one by one.
type Runner struct {
	store    Store
	resolver Resolver
	logger   *slog.Logger
	opts     Options
	sleep    func(context.Context, time.Duration) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithSleeper replaces the pause between rows, mainly for tests.
func WithSleeper(sleep func(context.Context, time.Duration) error) Option {
	return func(r *Runner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// NewRunner wires a runner from its collaborators.
func NewRunner(store Store, resolver Resolver, logger *slog.Logger, opts Options, options ...Option) (*Runner, error) {
	if store == nil {
		return nil, errors.New("enrich: store is required")
	}
	if resolver == nil {
		return nil, errors.New("enrich: resolver is required")
	}
	if opts.Sleep < 0 {
		return nil, services.Wrap(services.ErrUsage, "enrich", "configure", fmt.Sprintf("sleep must not be negative, got %v", opts.Sleep), nil)
	}
	r := &Runner{
		store:    store,
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "enrich"),
		opts:     opts,
		sleep:    sleepWithContext,
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

// Run fetches the configured page of rows and processes each of them. It
// returns the partial summary together with ctx.Err() when cancelled between
// rows. Lookup and update failures never abort the run.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{DryRun: r.opts.DryRun}
	logger := logging.WithContext(ctx, r.logger)

	records, err := r.store.FetchRecords(ctx, r.opts.Page)
	if err != nil {
		return summary, fmt.Errorf("fetch catalogue rows: %w", err)
	}
	summary.Fetched = len(records)
	logger.Info(fmt.Sprintf("found %d rows to process", len(records)),
		logging.Int("rows", len(records)),
		logging.Bool("dry_run", r.opts.DryRun),
		logging.Bool("force", r.opts.Force),
	)
	if len(records) == 0 {
		logger.Info("no rows found")
		return summary, nil
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", logging.Int("processed", len(summary.Results)), logging.Error(err))
			return summary, err
		}
		summary.add(r.processRecord(ctx, rec))

		if err := r.sleep(ctx, r.opts.Sleep); err != nil {
			logger.Warn("run interrupted", logging.Int("processed", len(summary.Results)), logging.Error(err))
			return summary, err
		}
	}

	logger.Info("done",
		logging.Int("skipped", summary.Skipped),
		logging.Int("resolved", summary.Resolved),
		logging.Int("not_found", summary.NotFound),
		logging.Int("updated", summary.Updated),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (r *Runner) processRecord(ctx context.Context, rec catalog.Record) Result {
	ctx = services.WithRecordKey(ctx, rec.Key)
	logger := logging.WithContext(ctx, r.logger)

	result := Result{
		Key:      rec.Key,
		Title:    strings.TrimSpace(rec.Title),
		Year:     strings.TrimSpace(rec.Year),
		Previous: strings.TrimSpace(rec.Director),
	}

	if result.Previous != "" && !r.opts.Force {
		logger.Info("director already set, skipping",
			logging.String("title", result.Title),
			logging.String("director", result.Previous),
		)
		result.Outcome = OutcomeSkipped
		return result
	}

	attrs := []logging.Attr{logging.String("title", result.Title)}
	if result.Year != "" {
		attrs = append(attrs, logging.String("year", result.Year))
	}
	logger.Info("processing", logging.Args(attrs...)...)

	lookupCtx := services.WithStep(ctx, "lookup")
	director, ok := r.resolver.ResolveDirector(lookupCtx, result.Title, result.Year)
	if !ok {
		logger.Info("director not found")
		result.Outcome = OutcomeNotFound
		return result
	}
	result.Director = director
	logger.Info("director resolved", logging.String("director", director))

	if r.opts.DryRun {
		result.Outcome = OutcomeResolved
		return result
	}

	updateCtx := services.WithStep(ctx, "update")
	if err := r.store.UpdateDirector(updateCtx, rec.Key, director); err != nil {
		logging.ErrorWithContext(logging.WithContext(updateCtx, r.logger), "failed to update director", "catalog_update_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check database permissions and connectivity"),
		)
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	result.Outcome = OutcomeUpdated
	return result
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
