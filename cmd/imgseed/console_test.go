package main_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/imgseed"
	main "github.com/fwojciec/imgseed/cmd/imgseed"
	"github.com/fwojciec/imgseed/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestConsole(t *testing.T) {
	t.Parallel()

	t.Run("prints progress lines", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := main.NewConsole(&buf, false)
		item := imgseed.Item{Name: "Almonds", Image: "u"}

		c.Progress(pipeline.ProgressEvent{Type: pipeline.ItemStarted, Index: 3, Total: 12, Item: item})
		c.Progress(pipeline.ProgressEvent{Type: pipeline.ItemFinished, Index: 3, Total: 12, Item: item,
			Outcome: imgseed.Succeeded(item, "/out/Almonds.jpg", 1536, "")})

		assert.Equal(t, "[3/12] Processing: Almonds\n         OK - Downloaded (1.5 KB)\n", buf.String())
	})

	t.Run("prefixes unexpected errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := main.NewConsole(&buf, false)
		item := imgseed.Item{Name: "Chia", Image: "u"}

		c.Progress(pipeline.ProgressEvent{Type: pipeline.ItemFinished, Item: item,
			Outcome: imgseed.Failed(item, imgseed.Errorf(imgseed.EHTTP, "HTTP 403 for u"))})

		assert.Equal(t, "         FAIL - Error: HTTP 403 for u\n", buf.String())
	})

	t.Run("emits no escape codes without colour", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := main.NewConsole(&buf, false)
		r := imgseed.NewReport(1)
		r.Record(imgseed.Failed(imgseed.Item{Name: "A", Image: "a"}, imgseed.Errorf(imgseed.ENOTFOUND, "x")))

		c.Summary(r, "/out")

		assert.NotContains(t, buf.String(), "\x1b[")
		assert.Contains(t, buf.String(), "Download complete!")
		assert.Contains(t, buf.String(), "  - A (a)")
	})

	t.Run("colours outcome lines when enabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		c := main.NewConsole(&buf, true)
		item := imgseed.Item{Name: "A", Image: "a"}

		c.Progress(pipeline.ProgressEvent{Type: pipeline.ItemFinished, Item: item,
			Outcome: imgseed.Succeeded(item, "/out/A.jpg", 1024, "")})

		assert.Contains(t, buf.String(), "\x1b[32m")
	})
}
