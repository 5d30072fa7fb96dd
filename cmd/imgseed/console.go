package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/fwojciec/imgseed"
	"github.com/fwojciec/imgseed/pipeline"
)

// indent aligns outcome lines under the item name.
const indent = "         "

// Console prints run progress and the final summary.
type Console struct {
	w    io.Writer
	ok   *color.Color
	fail *color.Color
	bold *color.Color
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer, useColor bool) *Console {
	c := &Console{
		w:    w,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed),
		bold: color.New(color.Bold),
	}
	for _, col := range []*color.Color{c.ok, c.fail, c.bold} {
		if useColor {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// Start prints the run header.
func (c *Console) Start(total int, outDir string) {
	fmt.Fprintf(c.w, "Starting download of %d images...\n", total)
	fmt.Fprintf(c.w, "Saving to: %s\n", outDir)
	fmt.Fprintf(c.w, "Setting up Chrome browser...\n\n")
}

// Progress prints one line when an item starts and one when it finishes.
func (c *Console) Progress(e pipeline.ProgressEvent) {
	switch e.Type {
	case pipeline.ItemStarted:
		fmt.Fprintf(c.w, "[%d/%d] Processing: %s\n", e.Index, e.Total, e.Item.Name)
	case pipeline.ItemFinished:
		if e.Outcome == nil {
			return
		}
		if e.Outcome.Status == imgseed.StatusSuccess {
			fmt.Fprint(c.w, indent)
			c.ok.Fprintf(c.w, "OK - Downloaded (%.1f KB)", float64(e.Outcome.Size)/1024)
			fmt.Fprintln(c.w)
			return
		}
		fmt.Fprint(c.w, indent)
		c.fail.Fprintf(c.w, "FAIL - %s", failureText(e.Outcome))
		fmt.Fprintln(c.w)
	}
}

// failureText renders a failure like "Could not find image URL" or
// "Error: HTTP 403 for ...".
func failureText(o *imgseed.Outcome) string {
	msg := o.Message
	if o.Reason == imgseed.ENOTFOUND {
		if msg == "" {
			return "Not found"
		}
		r := []rune(msg)
		return string(unicode.ToUpper(r[0])) + string(r[1:])
	}
	return "Error: " + msg
}

// Summary prints the final counts and the failed items.
func (c *Console) Summary(r *imgseed.Report, outDir string) {
	fmt.Fprintf(c.w, "\n%s\n", strings.Repeat("=", 50))
	c.bold.Fprintln(c.w, "Download complete!")
	fmt.Fprintf(c.w, "  Successful: %d\n", r.SuccessCount())
	fmt.Fprintf(c.w, "  Failed:     %d\n", r.FailureCount())
	fmt.Fprintf(c.w, "  Total:      %d\n", r.Total)
	fmt.Fprintf(c.w, "  Saved to:   %s\n", outDir)

	if len(r.Failed) == 0 {
		return
	}
	fmt.Fprintf(c.w, "\nFailed items:\n")
	for _, item := range r.Failed {
		fmt.Fprintf(c.w, "  - %s (%s)\n", item.Name, item.Image)
	}
}

// FailuresSaved reports where the failure artifact was written.
func (c *Console) FailuresSaved(path string) {
	fmt.Fprintf(c.w, "\nFailed items saved to: %s\n", path)
}
