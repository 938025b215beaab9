package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dojocards/internal/deck"
	"github.com/abhisek/dojocards/internal/history"
	"github.com/abhisek/dojocards/internal/ordering"
	"github.com/abhisek/dojocards/internal/progress"
	"github.com/abhisek/dojocards/internal/session"
	"github.com/abhisek/dojocards/internal/store"
)

// runtime holds the services shared by every command.
type runtime struct {
	cfg      config
	logger   *slog.Logger
	store    *store.Store
	catalog  *deck.Catalog
	history  *history.Store
	sessions *progress.Store
	builder  *deck.Builder
	loader   *session.Loader

	closeLog func() error
}

// openRuntime resolves configuration, opens the store and wires the services.
func openRuntime(cmd *cobra.Command, tui bool) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := openLogger(cfg, tui)
	if err != nil {
		return nil, err
	}

	catalog, err := newCatalog(cfg.Enable)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	source, err := newSource(cfg.Decks)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	kv := st.KV()
	hist := history.NewStore(kv, history.WithLogger(logger))
	sessions := progress.NewStore(kv, progress.DefaultNamespace, logger)
	builder := deck.NewBuilder(source, hist)

	logger.Debug("runtime ready",
		slog.String("db", cfg.DBPath),
		slog.String("decks", cfg.Decks),
		slog.String("belt", cfg.Belt),
	)

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		catalog:  catalog,
		history:  hist,
		sessions: sessions,
		builder:  builder,
		loader:   session.NewLoader(builder, hist, sessions, ordering.NewRand(cfg.Seed), logger),
		closeLog: closeLog,
	}, nil
}

// Close releases the store and the log file.
func (r *runtime) Close() error {
	return errors.Join(r.store.Close(), r.closeLog())
}

// belt returns the configured belt, which must exist and have decks.
func (r *runtime) belt() (deck.Belt, error) {
	return r.catalog.Enabled(r.cfg.Belt)
}

// newCatalog returns the default catalog with the extra belts enabled.
func newCatalog(enable []string) (*deck.Catalog, error) {
	catalog := deck.DefaultCatalog()
	for _, id := range enable {
		if err := catalog.Enable(strings.TrimSpace(id)); err != nil {
			return nil, fmt.Errorf("enable belt: %w", err)
		}
	}
	return catalog, nil
}

// newSource picks an HTTP or file system source for the deck location.
func newSource(location string) (deck.Source, error) {
	if deck.IsRemote(location) {
		src, err := deck.NewHTTPSource(location, nil)
		if err != nil {
			return nil, fmt.Errorf("deck source: %w", err)
		}
		return src, nil
	}
	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("deck source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("deck source: %s is not a directory", location)
	}
	return deck.FSSource{FS: os.DirFS(location)}, nil
}
