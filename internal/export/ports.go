// Package export mirrors the training collection to an external target so
// that reporting tools outside the app always see the latest state.
package export

import (
	"context"

	"trainlog/internal/core"
)

// RecordMirror replaces the mirrored copy of the training collection with the
// given snapshot. Mirrors are idempotent: replaying the same snapshot is safe.
type RecordMirror interface {
	Replace(ctx context.Context, records []core.TrainingRecord) error
}
