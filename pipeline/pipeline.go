// Package pipeline drives the sequential per-item loop: classify the source
// URL, resolve the direct asset URL in the shared browser session, download
// it and record exactly one outcome per item.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fwojciec/imgseed"
)

// DefaultDelay is the pause between items.
const DefaultDelay = 1 * time.Second

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ItemStarted ProgressType = iota
	ItemFinished
)

// ProgressEvent reports progress for one item. Index is 1-based.
type ProgressEvent struct {
	Type    ProgressType
	Index   int
	Total   int
	Item    imgseed.Item
	Outcome *imgseed.Outcome
}

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

// Pipeline resolves and downloads items one at a time using a single
// browser session. The session is owned by the caller, which opens it
// before Run and closes it afterwards.
type Pipeline struct {
	Session imgseed.Session
	Primary imgseed.Resolver
	Share   imgseed.Resolver
	Fetcher imgseed.AssetFetcher

	// History is optional. When set, every outcome is recorded under RunID.
	History imgseed.HistoryService
	RunID   string

	OutputDir string

	// Delay is the pause between items. Zero uses DefaultDelay;
	// a negative value disables pacing.
	Delay time.Duration

	// ShareSettle is waited after navigating to a share page, in addition
	// to the session's own settle delay.
	ShareSettle time.Duration

	Logger *slog.Logger

	// Sleep waits for d or until ctx is done. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run processes items in order and returns the report. One item's failure
// never stops the run; only context cancellation ends it early, in which
// case items not yet reached are recorded as canceled failures and the
// report is returned with the context error.
func (p *Pipeline) Run(ctx context.Context, items []imgseed.Item, progress ProgressFunc) (*imgseed.Report, error) {
	report := imgseed.NewReport(len(items))
	total := len(items)

	// Sanitized names may collide; the later item overwrites the file.
	savedBy := make(map[string]string)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			p.abandon(ctx, report, items, i)
			return report, err
		}

		if progress != nil {
			progress(ProgressEvent{Type: ItemStarted, Index: i + 1, Total: total, Item: item})
		}

		outcome := p.Process(ctx, item)
		report.Record(outcome)

		if outcome.Status == imgseed.StatusSuccess {
			if prev, ok := savedBy[outcome.Path]; ok && prev != item.Name {
				p.logger().Warn("file overwritten by item with same sanitized name",
					"path", outcome.Path,
					"previous", prev,
					"item", item.Name,
				)
			}
			savedBy[outcome.Path] = item.Name
		}

		p.record(ctx, i, outcome)

		if progress != nil {
			progress(ProgressEvent{Type: ItemFinished, Index: i + 1, Total: total, Item: item, Outcome: outcome})
		}

		if i < total-1 {
			if err := p.pause(ctx); err != nil {
				p.abandon(ctx, report, items, i+1)
				return report, err
			}
		}
	}

	return report, nil
}

// abandon records every item from index from onward as a canceled failure,
// so interrupted items still count toward the totals and the failure list.
func (p *Pipeline) abandon(ctx context.Context, report *imgseed.Report, items []imgseed.Item, from int) {
	ctx = context.WithoutCancel(ctx)
	for i := from; i < len(items); i++ {
		outcome := imgseed.Failed(items[i], imgseed.Errorf(imgseed.EINTERNAL, "canceled before processing"))
		report.Record(outcome)
		p.record(ctx, i, outcome)
	}
}

func (p *Pipeline) record(ctx context.Context, position int, outcome *imgseed.Outcome) {
	if p.History == nil {
		return
	}
	if err := p.History.RecordOutcome(ctx, p.RunID, position, outcome); err != nil {
		p.logger().Warn("record outcome", "item", outcome.Item.Name, "err", err)
	}
}

// Process runs the whole per-item pipeline and always returns an outcome.
// Errors and panics are contained here and converted to a failure.
func (p *Pipeline) Process(ctx context.Context, item imgseed.Item) (outcome *imgseed.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = imgseed.Failed(item, imgseed.Errorf(imgseed.EINTERNAL, "panic: %v", r))
		}
	}()

	o, err := p.processItem(ctx, item)
	if err != nil {
		return imgseed.Failed(item, err)
	}
	return o
}

func (p *Pipeline) processItem(ctx context.Context, item imgseed.Item) (*imgseed.Outcome, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	name := imgseed.Sanitize(item.Name)
	if name == "" {
		return nil, imgseed.Errorf(imgseed.EINVALID, "item name %q has no usable characters", item.Name)
	}

	switch Classify(item.Image) {
	case ProviderShare:
		return p.processShare(ctx, item, name)
	default:
		return p.processPrimary(ctx, item, name)
	}
}

// processPrimary resolves a pin page and downloads the high resolution
// variant, falling back to the URL found on the page.
func (p *Pipeline) processPrimary(ctx context.Context, item imgseed.Item, name string) (*imgseed.Outcome, error) {
	if err := p.Session.Navigate(ctx, item.Image); err != nil {
		return nil, err
	}
	p.Session.DismissOverlay(ctx)

	assetURL, err := p.Primary.Resolve(ctx, p.Session)
	if err != nil {
		return nil, err
	}

	dst := filepath.Join(p.OutputDir, name+imgseed.ExtensionFromURL(assetURL))
	logf := func(format string, args ...any) {
		p.logger().Warn(fmt.Sprintf(format, args...), "item", item.Name)
	}
	size, err := FetchFirst(ctx, p.Fetcher, Candidates(assetURL), dst, logf)
	if err != nil {
		return nil, err
	}

	return p.succeeded(item, dst, size), nil
}

// processShare resolves a share page and saves the image as .jpg. Every
// error on this path is reported as ENOTFOUND.
func (p *Pipeline) processShare(ctx context.Context, item imgseed.Item, name string) (*imgseed.Outcome, error) {
	dst := filepath.Join(p.OutputDir, name+imgseed.DefaultExtension)

	size, err := p.saveShared(ctx, item, dst)
	if err != nil {
		return nil, imgseed.Errorf(imgseed.ENOTFOUND, "could not find image on share page: %s", imgseed.ErrorMessage(err))
	}

	return p.succeeded(item, dst, size), nil
}

func (p *Pipeline) saveShared(ctx context.Context, item imgseed.Item, dst string) (int64, error) {
	if err := p.Session.Navigate(ctx, item.Image); err != nil {
		return 0, err
	}
	if err := p.sleep(ctx, p.ShareSettle); err != nil {
		return 0, err
	}

	assetURL, err := p.Share.Resolve(ctx, p.Session)
	if err != nil {
		return 0, err
	}

	return p.Fetcher.Fetch(ctx, assetURL, dst)
}

func (p *Pipeline) succeeded(item imgseed.Item, path string, size int64) *imgseed.Outcome {
	digest, err := imgseed.FileDigest(path)
	if err != nil {
		p.logger().Warn("digest", "path", path, "err", err)
	}
	return imgseed.Succeeded(item, path, size, digest)
}

func (p *Pipeline) pause(ctx context.Context) error {
	d := p.Delay
	if d == 0 {
		d = DefaultDelay
	}
	return p.sleep(ctx, d)
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
