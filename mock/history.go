package mock

import (
	"context"

	"github.com/fwojciec/imgseed"
)

var _ imgseed.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of imgseed.HistoryService.
type HistoryService struct {
	CreateRunFn     func(ctx context.Context, run *imgseed.Run) error
	FinishRunFn     func(ctx context.Context, id string, report *imgseed.Report) error
	RecordOutcomeFn func(ctx context.Context, runID string, position int, outcome *imgseed.Outcome) error
	FindRunsFn      func(ctx context.Context, limit int) ([]*imgseed.Run, error)
	FindEntriesFn   func(ctx context.Context, filter imgseed.EntryFilter) ([]*imgseed.Entry, error)
}

func (s *HistoryService) CreateRun(ctx context.Context, run *imgseed.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *HistoryService) FinishRun(ctx context.Context, id string, report *imgseed.Report) error {
	return s.FinishRunFn(ctx, id, report)
}

func (s *HistoryService) RecordOutcome(ctx context.Context, runID string, position int, outcome *imgseed.Outcome) error {
	return s.RecordOutcomeFn(ctx, runID, position, outcome)
}

func (s *HistoryService) FindRuns(ctx context.Context, limit int) ([]*imgseed.Run, error) {
	return s.FindRunsFn(ctx, limit)
}

func (s *HistoryService) FindEntries(ctx context.Context, filter imgseed.EntryFilter) ([]*imgseed.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}
