package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/fs"
	"github.com/fwojciec/imgseed/goquery"
	imghttp "github.com/fwojciec/imgseed/http"
	"github.com/fwojciec/imgseed/pipeline"
	"github.com/fwojciec/imgseed/rod"
	isslog "github.com/fwojciec/imgseed/slog"
	"github.com/fwojciec/imgseed/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, imgseed.ErrorMessage(err))
		os.Exit(1)
	}
}

// assetRPS paces image downloads per registrable domain.
const assetRPS = 2.0

// Main represents the program.
type Main struct {
	// Color forces console colouring on or off. Nil detects a terminal.
	Color *bool
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("imgseed"),
		kong.Description("Download manifest images through a headless browser"),
		Vars(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'imgseed --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		Console: NewConsole(stdout, m.useColor(stdout)),
	}
	wire(deps, logger)

	return kongCtx.Run(deps)
}

func (m *Main) useColor(stdout io.Writer) bool {
	if m.Color != nil {
		return *m.Color
	}
	return stdout == os.Stdout && !color.NoColor
}

// newLogger returns a text logger on w. Without verbose, records are dropped.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// wire installs the production implementations into deps.
func wire(deps *Dependencies, logger *slog.Logger) {
	deps.OpenSession = func(cfg imgseed.Config) (imgseed.Session, error) {
		s, err := rod.NewSession(
			rod.WithUserAgent(cfg.UserAgent),
			rod.WithOverlaySelector(cfg.OverlaySelector),
			rod.WithSettle(cfg.Settle),
			rod.WithNavigateTimeout(cfg.Timeout),
		)
		if err != nil {
			return nil, err
		}
		return rod.NewLoggingSession(s, logger), nil
	}

	deps.NewFetcher = func(cfg imgseed.Config) imgseed.AssetFetcher {
		f := imghttp.NewAssetFetcher(
			imghttp.WithTimeout(cfg.Timeout),
			imghttp.WithUserAgent(cfg.UserAgent),
			imghttp.WithLimiter(pipeline.NewDomainLimiter(assetRPS)),
		)
		return isslog.NewLoggingAssetFetcher(f, logger)
	}

	deps.OpenHistory = func(path string) (imgseed.HistoryService, io.Closer, error) {
		db := sqlite.NewDB(path)
		if err := db.Open(); err != nil {
			return nil, nil, err
		}
		return isslog.NewLoggingHistoryService(sqlite.NewHistoryService(db), logger), db, nil
	}

	deps.NewFailureWriter = func(path string) imgseed.FailureWriter {
		return fs.NewFailureWriter(path)
	}

	deps.Primary = isslog.NewLoggingResolver(goquery.NewPinResolver(), pipeline.ProviderPrimary.String(), logger)
	deps.Share = isslog.NewLoggingResolver(goquery.NewShareResolver(), pipeline.ProviderShare.String(), logger)
	deps.Sleep = sleep
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
