package export

import (
	"context"
	"fmt"
	"log/slog"

	"trainlog/internal/export/google"
)

// Mirror backends.
const (
	FileBackend   = "file"
	SheetsBackend = "sheets"
	NoneBackend   = "none"
)

var _ RecordMirror = (*FileMirror)(nil)
var _ RecordMirror = (*google.Client)(nil)

// NewMirror builds the configured mirror backend. The "none" backend returns
// a nil mirror; callers treat nil as mirroring disabled.
func NewMirror(ctx context.Context, backend, filePath string) (RecordMirror, error) {
	switch backend {
	case FileBackend:
		slog.InfoContext(ctx, "Initialized file mirror", "path", filePath)
		return NewFileMirror(filePath), nil
	case SheetsBackend:
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets mirror: %w", err)
		}
		slog.InfoContext(ctx, "Initialized Google Sheets mirror")
		return cli, nil
	case NoneBackend, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported mirror backend: %s", backend)
	}
}
