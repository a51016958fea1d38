// Package app is the client-side view model: the displayed geo record,
// the in-flight and search-mode flags, and the user-facing messages.
package app

import (
	"context"

	"ipscope/internal/client/geo"
	"ipscope/internal/domain/entity"

	"github.com/pkg/errors"
)

type lookupClient interface {
	Lookup(ctx context.Context, addr string) (*entity.GeoRecord, error)
	LookupSelf(ctx context.Context) (*entity.GeoRecord, error)
}

type historyStore interface {
	Add(record *entity.GeoRecord, searched string) error
	Load() ([]entity.HistoryEntry, error)
	Clear() error
}

// App drives the lookup view. All mutation happens on the caller's
// goroutine; there are no concurrent writers.
type App struct {
	client  lookupClient
	history historyStore

	ownGeo     *entity.GeoRecord
	currentGeo *entity.GeoRecord
	loading    bool
	searchMode bool
	errMessage string
	validation string
}

// New builds the view model over a lookup client and a history store.
func New(client lookupClient, history historyStore) *App {
	return &App{
		client:  client,
		history: history,
	}
}

// Start performs the one self-lookup per view load. A result arriving
// after ctx is cancelled is discarded and never applied.
func (a *App) Start(ctx context.Context) error {
	a.loading = true
	defer func() { a.loading = false }()

	record, err := a.client.LookupSelf(ctx)
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		a.errMessage = err.Error()

		return err
	}

	a.ownGeo = record
	a.currentGeo = record
	a.errMessage = ""

	return nil
}

// Search validates addr, looks it up, displays the result, and records a
// history entry. Invalid input fails locally with a validation message; a
// lookup already in flight rejects re-submission.
func (a *App) Search(ctx context.Context, addr string) error {
	if a.loading {
		return errors.New("a lookup is already in progress")
	}

	if err := geo.ValidateIPv4(addr); err != nil {
		a.validation = err.Error()

		return err
	}
	a.validation = ""

	a.loading = true
	defer func() { a.loading = false }()

	record, err := a.client.Lookup(ctx, addr)
	if err != nil {
		a.errMessage = err.Error()

		return err
	}

	a.currentGeo = record
	a.searchMode = true
	a.errMessage = ""

	if err := a.history.Add(record, addr); err != nil {
		return err
	}

	return nil
}

// Clear restores the displayed record to the self-lookup result, not to an
// empty state, and resets the search-mode flag and messages.
func (a *App) Clear() {
	a.currentGeo = a.ownGeo
	a.searchMode = false
	a.errMessage = ""
	a.validation = ""
}

// History returns the persisted past searches, newest first.
func (a *App) History() ([]entity.HistoryEntry, error) {
	return a.history.Load()
}

// ClearHistory empties the persisted search history.
func (a *App) ClearHistory() error {
	return a.history.Clear()
}

// Current returns the record on display.
func (a *App) Current() *entity.GeoRecord { return a.currentGeo }

// Own returns the most recent self-lookup result.
func (a *App) Own() *entity.GeoRecord { return a.ownGeo }

// Loading reports whether a lookup is in flight.
func (a *App) Loading() bool { return a.loading }

// SearchMode reports whether the displayed record came from a search
// rather than the self-lookup.
func (a *App) SearchMode() bool { return a.searchMode }

// ErrorMessage returns the last lookup failure message, if any.
func (a *App) ErrorMessage() string { return a.errMessage }

// ValidationMessage returns the last local validation message, if any.
func (a *App) ValidationMessage() string { return a.validation }
