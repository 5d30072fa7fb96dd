package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/imgseed/cmd/imgseed"
	"github.com/fwojciec/imgseed/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) *main.CLI {
	t.Helper()
	cli := &main.CLI{}
	parser, err := kong.New(cli,
		kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
		main.Vars(),
	)
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return cli
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		main.Vars(),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"run", "history"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_RunDefaults(t *testing.T) {
	t.Parallel()

	cli := parse(t, "run", "items.json")

	assert.Equal(t, "items.json", cli.Run.Manifest)
	assert.Equal(t, "downloaded-images", cli.Run.Out)
	assert.Equal(t, fs.DefaultFailuresFile, cli.Run.Failures)
	assert.Empty(t, cli.Run.History)
	assert.Zero(t, cli.Run.Delay)
	assert.False(t, cli.Verbose)
}

func TestCLI_RunFlags(t *testing.T) {
	t.Parallel()

	cli := parse(t, "-v", "run", "items.json",
		"--out", "imgs",
		"--failures", "retry.json",
		"--delay", "250ms",
		"--settle", "5s",
		"--timeout", "1m",
		"--history", "runs.db",
	)

	assert.True(t, cli.Verbose)
	assert.Equal(t, "imgs", cli.Run.Out)
	assert.Equal(t, "retry.json", cli.Run.Failures)
	assert.Equal(t, 250*time.Millisecond, cli.Run.Delay)
	assert.Equal(t, 5*time.Second, cli.Run.Settle)
	assert.Equal(t, time.Minute, cli.Run.Timeout)
	assert.Equal(t, "runs.db", cli.Run.History)
}

// Not parallel: t.Setenv.
func TestCLI_RunReadsEnvironment(t *testing.T) {
	t.Setenv("IMGSEED_OUT", "from-env")
	t.Setenv("IMGSEED_DELAY", "2s")

	cli := parse(t, "run", "items.json")

	assert.Equal(t, "from-env", cli.Run.Out)
	assert.Equal(t, 2*time.Second, cli.Run.Delay)
}

func TestCLI_HistoryRequiresDatabase(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli,
		kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
		main.Vars(),
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"history"})

	require.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "run")
	assert.Contains(t, stdout.String(), "history")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
