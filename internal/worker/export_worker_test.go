package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"trainlog/internal/amqp"
	"trainlog/internal/core"
	"trainlog/internal/storage"
)

type fakeStates struct {
	payload []byte
	err     error
}

func (f *fakeStates) Load(_ context.Context, key string) ([]byte, error) {
	if key != storage.KeyTrainingRecords {
		return nil, errors.New("unexpected key: " + key)
	}
	return f.payload, f.err
}

type fakeMirror struct {
	replaced [][]core.TrainingRecord
	err      error
}

func (f *fakeMirror) Replace(_ context.Context, records []core.TrainingRecord) error {
	f.replaced = append(f.replaced, records)
	return f.err
}

func TestHandleChangeMessageResyncsFullCollection(t *testing.T) {
	records := []core.TrainingRecord{
		{ID: "r1", Date: core.NewDate(2024, 7, 9), TraineeID: "M100", Type: core.Qualification, Hours: 2},
		{ID: "r2", Date: core.NewDate(2024, 7, 10), TraineeID: "M200", Type: core.Refreshment, Hours: 1},
	}
	payload, _ := json.Marshal(records)

	mirror := &fakeMirror{}
	w := NewExportWorker(&fakeStates{payload: payload}, mirror)

	msg := amqp.NewRecordChangeMessage("r1", "upsert")
	if err := w.HandleChangeMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleChangeMessage() error = %v", err)
	}

	if len(mirror.replaced) != 1 {
		t.Fatalf("mirror replaced %d times, want 1", len(mirror.replaced))
	}
	if len(mirror.replaced[0]) != 2 {
		t.Errorf("mirror got %d records, want the full collection of 2", len(mirror.replaced[0]))
	}
}

func TestResyncEmptyState(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewExportWorker(&fakeStates{}, mirror)

	if err := w.Resync(context.Background()); err != nil {
		t.Fatalf("Resync() error = %v", err)
	}
	if len(mirror.replaced) != 1 || mirror.replaced[0] != nil {
		t.Errorf("empty state should mirror an empty snapshot, got %v", mirror.replaced)
	}
}

func TestResyncErrors(t *testing.T) {
	t.Run("load failure", func(t *testing.T) {
		w := NewExportWorker(&fakeStates{err: errors.New("db gone")}, &fakeMirror{})
		if err := w.Resync(context.Background()); err == nil {
			t.Error("expected load error to propagate")
		}
	})

	t.Run("corrupt payload", func(t *testing.T) {
		w := NewExportWorker(&fakeStates{payload: []byte("{oops")}, &fakeMirror{})
		if err := w.Resync(context.Background()); err == nil {
			t.Error("expected unmarshal error to propagate")
		}
	})

	t.Run("mirror failure requeues", func(t *testing.T) {
		payload, _ := json.Marshal([]core.TrainingRecord{{ID: "r1"}})
		w := NewExportWorker(&fakeStates{payload: payload}, &fakeMirror{err: errors.New("sheet unavailable")})
		if err := w.Resync(context.Background()); err == nil {
			t.Error("expected mirror error to propagate")
		}
	})
}
