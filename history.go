package imgseed

import (
	"context"
	"time"
)

// Run is one invocation of the pipeline over a manifest.
type Run struct {
	ID         string    `json:"id"`
	Manifest   string    `json:"manifest"`
	OutputDir  string    `json:"outputDir"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Manifest == "" {
		return Errorf(EINVALID, "run manifest required")
	}
	return nil
}

// Entry is an Outcome as recorded in run history.
type Entry struct {
	ID         string    `json:"id"`
	RunID      string    `json:"runId"`
	Position   int       `json:"position"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	Status     Status    `json:"status"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"`
	Reason     string    `json:"reason"`
	Message    string    `json:"message"`
	RecordedAt time.Time `json:"recordedAt"`
}

// HistoryService records runs and their outcomes for later auditing.
type HistoryService interface {
	// CreateRun stores a new run and assigns its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final counters of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, report *Report) error

	// RecordOutcome stores the outcome at the given manifest position.
	RecordOutcome(ctx context.Context, runID string, position int, outcome *Outcome) error

	// FindRuns returns runs, most recent first.
	FindRuns(ctx context.Context, limit int) ([]*Run, error)

	// FindEntries returns the recorded outcomes matching the filter in position order.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	RunID  *string `json:"runId"`
	Status *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
