package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/imgseed"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ imgseed.HistoryService = (*HistoryService)(nil)

// HistoryService implements imgseed.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// CreateRun stores a new run with a generated ID and start time.
func (s *HistoryService) CreateRun(ctx context.Context, run *imgseed.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, manifest, output_dir, total, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Manifest, run.OutputDir, run.Total, run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun stores the final counters from report.
func (s *HistoryService) FinishRun(ctx context.Context, id string, report *imgseed.Report) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET total = ?, succeeded = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`, report.Total, report.SuccessCount(), report.FailureCount(),
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return imgseed.Errorf(imgseed.ENOTFOUND, "run not found")
	}
	return nil
}

// RecordOutcome stores outcome at the given manifest position.
func (s *HistoryService) RecordOutcome(ctx context.Context, runID string, position int, outcome *imgseed.Outcome) error {
	if runID == "" {
		return imgseed.Errorf(imgseed.EINVALID, "run ID required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (id, run_id, position, name, image, status, path, size, digest, reason, message, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), runID, position, outcome.Item.Name, outcome.Item.Image,
		string(outcome.Status), outcome.Path, outcome.Size, outcome.Digest,
		outcome.Reason, outcome.Message, time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindRuns returns runs, most recent first.
func (s *HistoryService) FindRuns(ctx context.Context, limit int) ([]*imgseed.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, manifest, output_dir, total, succeeded, failed, started_at, finished_at
		FROM runs ORDER BY started_at DESC, rowid DESC`)
	appendPagination(&query, &args, limit, 0)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*imgseed.Run
	for rows.Next() {
		var run imgseed.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.Manifest, &run.OutputDir, &run.Total,
			&run.Succeeded, &run.Failed, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if finishedAt != "" {
			if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
				return nil, err
			}
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindEntries returns recorded outcomes matching filter in position order.
func (s *HistoryService) FindEntries(ctx context.Context, filter imgseed.EntryFilter) ([]*imgseed.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, run_id, position, name, image, status, path, size, digest, reason, message, recorded_at
		FROM outcomes WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY run_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*imgseed.Entry
	for rows.Next() {
		var e imgseed.Entry
		var status, recordedAt string

		if err := rows.Scan(&e.ID, &e.RunID, &e.Position, &e.Name, &e.Image, &status,
			&e.Path, &e.Size, &e.Digest, &e.Reason, &e.Message, &recordedAt); err != nil {
			return nil, err
		}
		e.Status = imgseed.Status(status)

		if e.RecordedAt, err = parseRFC3339(recordedAt, "recorded_at"); err != nil {
			return nil, err
		}

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
