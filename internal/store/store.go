// Package store owns the in-memory training-record and planned-session
// collections. Consumers get sorted copies; every mutation routes through the
// store so that enrichment and persistence stay consistent.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"trainlog/internal/core"
	"trainlog/internal/storage"
)

// Persister is the outbound port to the key-value state store.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// Publisher emits record-change events for the export worker. It is optional;
// a nil Publisher disables eventing.
type Publisher interface {
	PublishRecordChange(ctx context.Context, id, op string) error
}

// Change operations carried in events.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
	OpImport = "import"
)

type Store struct {
	mu      sync.Mutex
	user    string
	roster  core.Roster
	records []core.TrainingRecord
	plans   []core.PlannedSession

	kv  Persister
	pub Publisher
}

// New creates an uninitialized store. Initialize must be called (at login)
// before any other operation.
func New(kv Persister, pub Publisher) *Store {
	return &Store{kv: kv, pub: pub}
}

// Initialize sets the acting user and roster, then loads the persisted
// collections. A missing or corrupt persisted payload is treated as an empty
// collection, never as a fatal error.
func (s *Store) Initialize(ctx context.Context, userName string, roster core.Roster) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = userName
	s.roster = roster
	s.records = s.loadRecords(ctx)
	s.plans = s.loadPlans(ctx)

	slog.InfoContext(ctx, "Store initialized",
		"user", userName,
		"roster_size", roster.Len(),
		"records", len(s.records),
		"plans", len(s.plans))
}

// User returns the acting user, or "" before Initialize.
func (s *Store) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// LookupEmployee normalizes the identifier and searches the roster.
func (s *Store) LookupEmployee(id string) (core.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Lookup(id)
}

// Add assigns a fresh identifier, defaults the trainer to the acting user,
// enriches the record and prepends it to the collection. The store performs
// no field validation; that happens at the boundary before this call.
func (s *Store) Add(ctx context.Context, rec core.TrainingRecord) core.TrainingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	if rec.Trainer == "" {
		rec.Trainer = s.user
	}
	rec = core.EnrichRecord(rec, s.roster)

	s.records = append([]core.TrainingRecord{rec}, s.records...)
	s.persist(ctx)
	s.publish(ctx, rec.ID, OpUpsert)
	return rec
}

// Update replaces the record with the same identifier. The trainer field is
// forced back to the original value (trainer is immutable after creation) and
// enrichment is recomputed. A missing identifier is a silent no-op.
func (s *Store) Update(ctx context.Context, rec core.TrainingRecord) (core.TrainingRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.records {
		if existing.ID != rec.ID {
			continue
		}
		rec.Trainer = existing.Trainer
		rec = core.EnrichRecord(rec, s.roster)
		s.records[i] = rec
		s.persist(ctx)
		s.publish(ctx, rec.ID, OpUpsert)
		return rec, true
	}

	slog.DebugContext(ctx, "Update for absent record ignored", "id", rec.ID)
	return core.TrainingRecord{}, false
}

// Remove filters the identifier out of the collection. Removing an absent
// identifier is not an error.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.records = kept
	s.persist(ctx)
	s.publish(ctx, id, OpDelete)
}

// ImportBulk replaces the whole training collection. Every imported record is
// force-attributed to the acting user, given a fresh identifier when missing,
// and enriched. Confirmation gating belongs to the caller.
func (s *Store) ImportBulk(ctx context.Context, records []core.TrainingRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	imported := make([]core.TrainingRecord, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.Trainer = s.user
		imported = append(imported, core.EnrichRecord(rec, s.roster))
	}
	s.records = imported
	s.persist(ctx)
	s.publish(ctx, "", OpImport)

	slog.InfoContext(ctx, "Bulk import applied", "count", len(imported), "user", s.user)
	return len(imported)
}

// ListTrainingRecords returns a fresh copy of all records sorted by training
// date descending. Callers must not assume a live view.
func (s *Store) ListTrainingRecords() []core.TrainingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.TrainingRecord, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// FindByID is a direct lookup with no enrichment re-check.
func (s *Store) FindByID(id string) (core.TrainingRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return core.TrainingRecord{}, false
}

// AddPlan assigns a fresh identifier, defaults the trainer to the acting user
// and derives the month name.
func (s *Store) AddPlan(ctx context.Context, p core.PlannedSession) core.PlannedSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	if p.Trainer == "" {
		p.Trainer = s.user
	}
	p = core.EnrichPlan(p)

	s.plans = append(s.plans, p)
	s.persist(ctx)
	return p
}

// UpdatePlan fully replaces the plan with the same identifier; unlike record
// updates no field is preserved from the original. Missing identifier is a
// silent no-op.
func (s *Store) UpdatePlan(ctx context.Context, p core.PlannedSession) (core.PlannedSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.plans {
		if existing.ID != p.ID {
			continue
		}
		p = core.EnrichPlan(p)
		s.plans[i] = p
		s.persist(ctx)
		return p, true
	}

	slog.DebugContext(ctx, "Update for absent plan ignored", "id", p.ID)
	return core.PlannedSession{}, false
}

// DeletePlan filters the identifier out; absent identifiers are not an error.
func (s *Store) DeletePlan(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.plans[:0]
	for _, p := range s.plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.plans = kept
	s.persist(ctx)
}

// ListPlans returns a fresh copy of all plans sorted by planned date
// ascending.
func (s *Store) ListPlans() []core.PlannedSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.PlannedSession, len(s.plans))
	copy(out, s.plans)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

func (s *Store) FindPlanByID(id string) (core.PlannedSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.plans {
		if p.ID == id {
			return p, true
		}
	}
	return core.PlannedSession{}, false
}

// persist writes both collections unconditionally. Save failures are logged
// and swallowed: in-memory state stays the source of truth for the session.
// The two writes are independent, not transactional.
func (s *Store) persist(ctx context.Context) {
	if s.kv == nil {
		return
	}

	if payload, err := json.Marshal(s.records); err != nil {
		slog.ErrorContext(ctx, "Marshal training records failed", "error", err)
	} else if err := s.kv.Save(ctx, storage.KeyTrainingRecords, payload); err != nil {
		slog.ErrorContext(ctx, "Persist training records failed", "error", err)
	}

	if payload, err := json.Marshal(s.plans); err != nil {
		slog.ErrorContext(ctx, "Marshal planned sessions failed", "error", err)
	} else if err := s.kv.Save(ctx, storage.KeyPlannedSessions, payload); err != nil {
		slog.ErrorContext(ctx, "Persist planned sessions failed", "error", err)
	}
}

func (s *Store) publish(ctx context.Context, id, op string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishRecordChange(ctx, id, op); err != nil {
		slog.WarnContext(ctx, "Record change event not published", "error", err, "id", id, "op", op)
	}
}

func (s *Store) loadRecords(ctx context.Context) []core.TrainingRecord {
	if s.kv == nil {
		return nil
	}
	payload, err := s.kv.Load(ctx, storage.KeyTrainingRecords)
	if err != nil {
		slog.WarnContext(ctx, "Load training records failed, starting empty", "error", err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	var records []core.TrainingRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		slog.WarnContext(ctx, "Corrupt training records payload, starting empty", "error", err)
		return nil
	}
	return records
}

func (s *Store) loadPlans(ctx context.Context) []core.PlannedSession {
	if s.kv == nil {
		return nil
	}
	payload, err := s.kv.Load(ctx, storage.KeyPlannedSessions)
	if err != nil {
		slog.WarnContext(ctx, "Load planned sessions failed, starting empty", "error", err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}
	var plans []core.PlannedSession
	if err := json.Unmarshal(payload, &plans); err != nil {
		slog.WarnContext(ctx, "Corrupt planned sessions payload, starting empty", "error", err)
		return nil
	}
	return plans
}
