package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/spendtrack-dev/spendtrack/internal/config"
	"github.com/spendtrack-dev/spendtrack/internal/ledger"
	"github.com/spendtrack-dev/spendtrack/internal/logging"
	"github.com/spendtrack-dev/spendtrack/internal/store"
	"github.com/spendtrack-dev/spendtrack/internal/upload"
	"github.com/spendtrack-dev/spendtrack/internal/users"
)

// app bundles everything a command needs once a project is opened.
type app struct {
	root    string
	cfg     *config.Config
	store   *store.Store
	ledger  *ledger.Ledger
	users   *users.Service
	folders *upload.Folders
	log     zerolog.Logger
}

// openApp loads the project at dir and opens its database. The caller
// must close the returned app.
func openApp(dir string) (*app, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("no project found at %s (run 'spendtrack init' first): %w", root, err)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	s, err := store.Open(store.Options{
		Path: cfg.DatabasePath(root),
		Log:  log,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		root:    root,
		cfg:     cfg,
		store:   s,
		ledger:  ledger.New(s, log),
		users:   users.New(s, log),
		folders: upload.NewFolders(cfg.UploadDir(root), cfg.UsersDir(root), log),
		log:     log,
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Closing database")
	}
}
