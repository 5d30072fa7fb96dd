package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/imgseed"
)

// DefaultFailuresFile is the failure artifact name used by the CLI.
const DefaultFailuresFile = "failed-downloads.json"

// Ensure FailureWriter implements imgseed.FailureWriter at compile time.
var _ imgseed.FailureWriter = (*FailureWriter)(nil)

// FailureWriter writes failed items as a manifest so they can be retried.
// The file is written to path.tmp and renamed into place, so an interrupted
// write never leaves a truncated artifact.
type FailureWriter struct {
	path string
}

// NewFailureWriter creates a FailureWriter targeting path.
func NewFailureWriter(path string) *FailureWriter {
	return &FailureWriter{path: path}
}

// WriteFailures writes items as an indented JSON array. Nothing is written
// when items is empty.
func (w *FailureWriter) WriteFailures(ctx context.Context, items []imgseed.Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return err
	}

	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
