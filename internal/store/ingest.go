package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spendtrack-dev/spendtrack/internal/importer"
)

// Ingest parses and persists a batch of export files for one user.
// Each receipt row is written only if no identical row already exists;
// a newly written receipt that is a spend also gets its normalized
// Transaction row, again guarded by an existence check on the
// projected columns. Re-running Ingest over the same files therefore
// writes nothing and reports false.
//
// Files that match no known format are skipped. Each file runs in its
// own SQL transaction: a failure rolls back the current file only, and
// a re-run picks up whatever is still missing.
//
// Returns true iff any row was newly written across the whole batch.
func (s *Store) Ingest(files []string, userID int64) (bool, error) {
	registry := importer.DefaultRegistry()

	updated := false
	for _, path := range files {
		parser := registry.Detect(path)
		if parser == nil {
			s.log.Debug().Str("file", path).Msg("No parser matches file, skipping")
			continue
		}

		written, err := s.ingestFile(path, userID, parser)
		if err != nil {
			return updated, fmt.Errorf("ingesting %s: %w", filepath.Base(path), err)
		}
		if written > 0 {
			updated = true
		}
		s.log.Info().
			Str("file", filepath.Base(path)).
			Str("format", parser.Format()).
			Int("rows_written", written).
			Int64("user_id", userID).
			Msg("File ingested")
	}

	if !updated {
		s.log.Info().Int64("user_id", userID).Msg("No updates made to the ledger")
	}
	return updated, nil
}

func (s *Store) ingestFile(path string, userID int64, parser importer.Parser) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	receipts, err := parser.Parse(f, userID)
	if err != nil {
		return 0, err
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	written := 0
	for _, receipt := range receipts {
		exists, err := receiptExists(tx, receipt)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		if err := insertReceipt(tx, receipt); err != nil {
			return 0, err
		}
		written++

		txn, ok, err := receipt.Normalize()
		if err != nil {
			return 0, err
		}
		if !ok {
			continue // payments never produce a Transaction
		}

		txnExists, err := transactionExists(tx, &txn)
		if err != nil {
			return 0, err
		}
		if txnExists {
			continue
		}
		if err := insertTransaction(tx, &txn); err != nil {
			return 0, err
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return written, nil
}
