package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/imgseed"
)

// Ensure LoggingHistoryService implements imgseed.HistoryService.
var _ imgseed.HistoryService = (*LoggingHistoryService)(nil)

// LoggingHistoryService wraps a HistoryService with debug logging.
type LoggingHistoryService struct {
	next   imgseed.HistoryService
	logger *slog.Logger
}

// NewLoggingHistoryService creates a new LoggingHistoryService.
func NewLoggingHistoryService(next imgseed.HistoryService, logger *slog.Logger) *LoggingHistoryService {
	return &LoggingHistoryService{next: next, logger: logger}
}

func (s *LoggingHistoryService) CreateRun(ctx context.Context, run *imgseed.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create run",
			"id", run.ID,
			"manifest", run.Manifest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

func (s *LoggingHistoryService) FinishRun(ctx context.Context, id string, report *imgseed.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("finish run",
			"id", id,
			"succeeded", report.SuccessCount(),
			"failed", report.FailureCount(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FinishRun(ctx, id, report)
}

func (s *LoggingHistoryService) RecordOutcome(ctx context.Context, runID string, position int, outcome *imgseed.Outcome) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record outcome",
			"run", runID,
			"position", position,
			"status", outcome.Status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RecordOutcome(ctx, runID, position, outcome)
}

func (s *LoggingHistoryService) FindRuns(ctx context.Context, limit int) ([]*imgseed.Run, error) {
	return s.next.FindRuns(ctx, limit)
}

func (s *LoggingHistoryService) FindEntries(ctx context.Context, filter imgseed.EntryFilter) ([]*imgseed.Entry, error) {
	return s.next.FindEntries(ctx, filter)
}
