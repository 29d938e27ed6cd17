package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/config"
	"github.com/spendtrack-dev/spendtrack/internal/logging"
	"github.com/spendtrack-dev/spendtrack/internal/store"
	"github.com/spendtrack-dev/spendtrack/internal/upload"
)

func newInitCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new spendtrack project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(*dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(absDir)
		},
	}
}

func runInit(root string) error {
	cfg := config.Default()
	log := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	// Create the upload drop area with its card-type subfolders.
	folders := upload.NewFolders(cfg.UploadDir(root), cfg.UsersDir(root), log)
	if err := folders.Ensure(); err != nil {
		return err
	}

	// Write spendtrack.yaml.
	if err := config.Save(root, cfg); err != nil {
		return err
	}

	// Create the database schema and reference data.
	s, err := store.Open(store.Options{
		Path: cfg.DatabasePath(root),
		Log:  log,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SeedCurrencies(); err != nil {
		return err
	}

	fmt.Printf("Initialized spendtrack project at %s\n", root)
	return nil
}
