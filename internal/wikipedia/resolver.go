package wikipedia

import (
	"context"
	"log/slog"

	"dvdenrich/internal/logging"
	"dvdenrich/internal/services"
	"dvdenrich/internal/textutil"
	"dvdenrich/internal/wikitext"
)

// strategy fetches one representation of an article and parses a director
// credit out of it.
type strategy struct {
	step  string
	fetch func(ctx context.Context, title string) (string, error)
	parse func(body string) (string, bool)
}

// Resolver looks up film directors through a Source.
type Resolver struct {
	source     Source
	logger     *slog.Logger
	strategies []strategy
}

// NewResolver builds a resolver that tries the infobox markup of the top
// search hit first and its intro extract second.
func NewResolver(source Source, logger *slog.Logger) *Resolver {
	r := &Resolver{
		source: source,
		logger: logging.NewComponentLogger(logger, "wikipedia"),
	}
	r.strategies = []strategy{
		{step: "wikitext", fetch: source.Wikitext, parse: wikitext.InfoboxDirector},
		{step: "extract", fetch: source.Extract, parse: wikitext.ExtractDirector},
	}
	return r
}

// ResolveDirector returns the director credited for the film with the given
// title and optional year. The boolean is false when no credit could be found,
// including when a request failed; failures are logged, never returned.
func (r *Resolver) ResolveDirector(ctx context.Context, title, year string) (string, bool) {
	query := textutil.SearchQuery(title, year)
	if query == "" {
		r.logger.Debug("empty search query, skipping lookup")
		return "", false
	}

	searchCtx := services.WithStep(ctx, "search")
	pageTitle, err := r.source.Search(searchCtx, query)
	if err != nil {
		r.requestFailed(searchCtx, err)
		return "", false
	}
	if pageTitle == "" {
		logging.WithContext(searchCtx, r.logger).Debug("no search hits", logging.String("query", query))
		return "", false
	}
	logging.WithContext(searchCtx, r.logger).Debug("search hit",
		logging.String("query", query),
		logging.String("page", pageTitle),
	)

	for _, s := range r.strategies {
		if ctx.Err() != nil {
			return "", false
		}
		stepCtx := services.WithStep(ctx, s.step)
		body, err := s.fetch(stepCtx, pageTitle)
		if err != nil {
			r.requestFailed(stepCtx, err)
			continue
		}
		if director, ok := s.parse(body); ok {
			logging.WithContext(stepCtx, r.logger).Debug("director credit found",
				logging.String("page", pageTitle),
				logging.String("director", director),
			)
			return director, true
		}
	}
	return "", false
}

func (r *Resolver) requestFailed(ctx context.Context, err error) {
	if ctx.Err() != nil {
		return
	}
	logging.ErrorWithContext(logging.WithContext(ctx, r.logger), "wikipedia request failed", "wikipedia_request_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check network access to the MediaWiki endpoint"),
	)
}
