// Package worker drives the export mirror from record-change messages.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"trainlog/internal/amqp"
	"trainlog/internal/core"
	"trainlog/internal/export"
	"trainlog/internal/storage"
)

// StateLoader is the slice of the state store the worker needs.
type StateLoader interface {
	Load(ctx context.Context, key string) ([]byte, error)
}

// ExportWorker mirrors the training collection to the configured target.
// Messages carry no payload; the worker always reloads the full collection
// from the state store, so replays and missed messages converge to the same
// result.
type ExportWorker struct {
	states StateLoader
	mirror export.RecordMirror
}

func NewExportWorker(states StateLoader, mirror export.RecordMirror) *ExportWorker {
	return &ExportWorker{
		states: states,
		mirror: mirror,
	}
}

// HandleChangeMessage processes a single record-change message.
func (w *ExportWorker) HandleChangeMessage(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	slog.InfoContext(ctx, "Processing record change message",
		"id", msg.ID,
		"op", msg.Op)

	return w.Resync(ctx)
}

// Resync pushes the current training collection to the mirror. It is also
// called at startup and on a timer as a backup for lost messages.
func (w *ExportWorker) Resync(ctx context.Context) error {
	records, err := w.loadRecords(ctx)
	if err != nil {
		return fmt.Errorf("load training records: %w", err)
	}

	if err := w.mirror.Replace(ctx, records); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}

	slog.InfoContext(ctx, "Mirror resynced", "records", len(records))
	return nil
}

func (w *ExportWorker) loadRecords(ctx context.Context) ([]core.TrainingRecord, error) {
	payload, err := w.states.Load(ctx, storage.KeyTrainingRecords)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}

	var records []core.TrainingRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("unmarshal training records: %w", err)
	}
	return records, nil
}
