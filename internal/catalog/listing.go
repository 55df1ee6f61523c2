package catalog

import (
	"context"

	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// Presenter renders a filtered listing.
type Presenter interface {
	Present(f Filter, entries []Entry)
}

// Listing re-renders its presenter whenever a filter is selected.
type Listing struct {
	source    Source
	presenter Presenter
	logger    logging.Logger
	active    Filter
}

// NewListing creates a Listing showing every entry until Select is called.
func NewListing(source Source, presenter Presenter, logger logging.Logger) *Listing {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Listing{source: source, presenter: presenter, logger: logger, active: FilterAll}
}

// Active returns the last selected filter.
func (l *Listing) Active() Filter {
	return l.active
}

// Select applies f and renders the result.
func (l *Listing) Select(ctx context.Context, f Filter) ([]Entry, error) {
	entries, err := l.source.Entries(ctx)
	if err != nil {
		logging.LogError(ctx, l.logger, "load catalog", err)
		return nil, err
	}
	l.active = f
	shown := Apply(entries, f)
	l.logger.Debug(ctx, "catalog filtered", "filter", string(f), "shown", len(shown), "total", len(entries))
	if l.presenter != nil {
		l.presenter.Present(f, shown)
	}
	return shown, nil
}
