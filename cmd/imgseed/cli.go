package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/fs"
)

// Vars returns the variables interpolated into CLI defaults.
func Vars() kong.Vars {
	return kong.Vars{"failures_file": fs.DefaultFailuresFile}
}

// Dependencies holds all services and configuration for command execution.
// Factories take the resolved run settings so tests can substitute them.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Console *Console

	OpenSession func(cfg imgseed.Config) (imgseed.Session, error)
	NewFetcher  func(cfg imgseed.Config) imgseed.AssetFetcher
	OpenHistory func(path string) (imgseed.HistoryService, io.Closer, error)

	NewFailureWriter func(path string) imgseed.FailureWriter

	Primary imgseed.Resolver
	Share   imgseed.Resolver

	Sleep func(ctx context.Context, d time.Duration) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" env:"IMGSEED_VERBOSE" help:"Log browser and download steps to stderr"`

	Run     RunCmd     `cmd:"" help:"Download the image of every manifest item"`
	History HistoryCmd `cmd:"" help:"Show recorded runs and their outcomes"`
}

// RunCmd is the "run" subcommand. Duration flags left at zero fall back to
// the config file, then to imgseed.DefaultConfig.
type RunCmd struct {
	Manifest  string        `arg:"" help:"JSON manifest of {name, image} items"`
	Out       string        `short:"o" default:"downloaded-images" env:"IMGSEED_OUT" help:"Output directory"`
	Failures  string        `default:"${failures_file}" env:"IMGSEED_FAILURES" help:"Where failed items are written"`
	Config    string        `short:"c" env:"IMGSEED_CONFIG" help:"YAML settings file"`
	UserAgent string        `name:"user-agent" env:"IMGSEED_USER_AGENT" help:"User agent for browser and downloads"`
	Delay     time.Duration `env:"IMGSEED_DELAY" help:"Pause between items (default 1s)"`
	Settle    time.Duration `env:"IMGSEED_SETTLE" help:"Wait after each page load (default 3s)"`
	Timeout   time.Duration `env:"IMGSEED_TIMEOUT" help:"Download timeout (default 30s)"`
	History   string        `env:"IMGSEED_HISTORY" help:"SQLite database recording every outcome"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	DB     string `required:"" env:"IMGSEED_HISTORY" help:"SQLite history database"`
	RunID  string `name:"run" help:"Show entries of this run (default: latest)"`
	Failed bool   `help:"Only show failed entries"`
	Limit  int    `default:"10" help:"Number of runs to list"`
}
