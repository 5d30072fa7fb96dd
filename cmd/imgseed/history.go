package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/imgseed"
)

// Run executes the history command. Without --run it lists recent runs and
// the entries of the latest one.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	history, closer, err := deps.OpenHistory(c.DB)
	if err != nil {
		return fmt.Errorf("failed to open history database %q: %w", c.DB, err)
	}
	defer closer.Close()

	runID := c.RunID
	if runID == "" {
		runs, err := history.FindRuns(deps.Ctx, c.Limit)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", imgseed.ErrorMessage(err))
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'imgseed run --history' to record one.")
			return nil
		}

		for _, r := range runs {
			fmt.Fprintf(deps.Stdout, "%s  %s  %s  ok=%d failed=%d total=%d\n",
				r.ID, r.StartedAt.Local().Format(time.DateTime), r.Manifest, r.Succeeded, r.Failed, r.Total)
		}
		fmt.Fprintln(deps.Stdout)
		runID = runs[0].ID
	}

	filter := imgseed.EntryFilter{RunID: &runID}
	if c.Failed {
		status := imgseed.StatusFailure
		filter.Status = &status
	}

	entries, err := history.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", imgseed.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(deps.Stdout, "No entries for run %s\n", runID)
		return nil
	}

	for _, e := range entries {
		if e.Status == imgseed.StatusSuccess {
			fmt.Fprintf(deps.Stdout, "%4d  OK    %s  %s (%d bytes, %s)\n", e.Position+1, e.Name, e.Path, e.Size, e.Digest)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%4d  FAIL  %s  %s: %s (%s)\n", e.Position+1, e.Name, e.Reason, e.Message, e.Image)
	}

	return nil
}
