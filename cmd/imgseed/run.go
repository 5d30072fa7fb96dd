package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/fs"
	"github.com/fwojciec/imgseed/pipeline"
	"github.com/fwojciec/imgseed/yaml"
)

// Run executes the run command. Item failures are reported, not returned;
// only setup errors and cancellation end the command with an error.
func (c *RunCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx

	cfg, err := c.Settings()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", imgseed.ErrorMessage(err))
		return err
	}

	items, err := fs.ReadManifest(c.Manifest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", imgseed.ErrorMessage(err))
		return err
	}

	outDir, err := fs.PrepareOutputDir(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", c.Out, err)
	}

	p := &pipeline.Pipeline{
		Primary:     deps.Primary,
		Share:       deps.Share,
		Fetcher:     deps.NewFetcher(cfg),
		OutputDir:   outDir,
		Delay:       cfg.Delay,
		ShareSettle: cfg.ShareSettle,
		Logger:      deps.Logger,
		Sleep:       deps.Sleep,
	}

	if c.History != "" {
		history, closer, err := deps.OpenHistory(c.History)
		if err != nil {
			return fmt.Errorf("failed to open history database %q: %w", c.History, err)
		}
		defer closer.Close()

		run := &imgseed.Run{Manifest: c.Manifest, OutputDir: outDir, Total: len(items)}
		if err := history.CreateRun(ctx, run); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		p.History = history
		p.RunID = run.ID
	}

	deps.Console.Start(len(items), outDir)

	session, err := deps.OpenSession(cfg)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	p.Session = session

	closeSession := sync.OnceFunc(func() {
		if err := session.Close(); err != nil {
			deps.Logger.Warn("close session", "err", err)
		}
	})
	defer closeSession()

	report, runErr := p.Run(ctx, items, deps.Console.Progress)
	closeSession()

	// Bookkeeping below must survive an interrupt.
	final := context.WithoutCancel(ctx)

	if p.History != nil {
		if err := p.History.FinishRun(final, p.RunID, report); err != nil {
			deps.Logger.Warn("finish run", "id", p.RunID, "err", err)
		}
	}

	deps.Console.Summary(report, outDir)

	if len(report.Failed) > 0 {
		if err := deps.NewFailureWriter(c.Failures).WriteFailures(final, report.Failed); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Failures, err)
		}
		deps.Console.FailuresSaved(c.Failures)
	}

	return runErr
}

// Settings resolves run settings: flags win over the config file, which wins
// over imgseed.DefaultConfig.
func (c *RunCmd) Settings() (imgseed.Config, error) {
	var cfg imgseed.Config
	if c.Config != "" {
		fileCfg, err := yaml.LoadConfig(c.Config)
		if err != nil {
			return imgseed.Config{}, err
		}
		cfg = *fileCfg
	}

	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	if c.Delay != 0 {
		cfg.Delay = c.Delay
	}
	if c.Settle != 0 {
		cfg.Settle = c.Settle
	}
	if c.Timeout != 0 {
		cfg.Timeout = c.Timeout
	}

	if cfg.Delay < 0 || cfg.Settle < 0 || cfg.ShareSettle < 0 || cfg.Timeout < 0 {
		return imgseed.Config{}, imgseed.Errorf(imgseed.EINVALID, "durations must not be negative")
	}

	return cfg.Merge(imgseed.DefaultConfig()), nil
}
