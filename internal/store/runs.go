package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoRuns indicates no ingest run has been recorded yet.
var ErrNoRuns = errors.New("no ingest runs recorded")

// SaveRun records an ingest run summary.
func (s *Store) SaveRun(ctx context.Context, run RunRecord) error {
	return s.execWithRetry(ensureContext(ctx), `
        INSERT INTO ingest_runs (
            run_id, started_at, finished_at,
            n_files, n_unmatched, n_failed, n_slates, n_no_marker, n_no_features
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Files, run.Unmatched, run.Failed, run.Slates, run.NoMarker, run.NoFeatures,
	)
}

// LastRun returns the most recently finished ingest run.
func (s *Store) LastRun(ctx context.Context) (RunRecord, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `
        SELECT run_id, started_at, finished_at,
               n_files, n_unmatched, n_failed, n_slates, n_no_marker, n_no_features
        FROM ingest_runs
        ORDER BY finished_at DESC
        LIMIT 1`)

	var (
		run                  RunRecord
		startedAt, finishedAt string
	)
	err := row.Scan(&run.RunID, &startedAt, &finishedAt,
		&run.Files, &run.Unmatched, &run.Failed, &run.Slates, &run.NoMarker, &run.NoFeatures)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, ErrNoRuns
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("scan last run: %w", err)
	}

	if t, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
		run.StartedAt = t
	}
	if t, perr := time.Parse(time.RFC3339Nano, finishedAt); perr == nil {
		run.FinishedAt = t
	}
	return run, nil
}
