package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"trainlog/internal/core"
	"trainlog/internal/csvio"
)

// FileMirror writes the collection snapshot to a CSV file. The write is
// atomic: a temp file in the same directory is renamed over the target, so
// readers never observe a half-written export.
type FileMirror struct {
	path string
}

func NewFileMirror(path string) *FileMirror {
	return &FileMirror{path: path}
}

func (m *FileMirror) Replace(ctx context.Context, records []core.TrainingRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(m.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := csvio.WriteRecords(tmp, records); err != nil {
		tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp export file: %w", err)
	}

	if err := os.Rename(tmp.Name(), m.path); err != nil {
		return fmt.Errorf("replace export file: %w", err)
	}
	return nil
}
