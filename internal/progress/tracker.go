package progress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/abhisek/kanaflash/internal/catalog"
	"github.com/abhisek/kanaflash/internal/kv"
)

// StorageKey is the key the progress table is persisted under.
const StorageKey = "kanaflash.progress"

// storedEntry is the persisted shape of one table row.
type storedEntry struct {
	CorrectCount   int       `json:"correctCount"`
	IncorrectCount int       `json:"incorrectCount"`
	LastReviewedAt time.Time `json:"lastReviewedAt"`
	Mastered       bool      `json:"mastered"`
}

// Tracker owns the progress table. Every mutation rewrites the whole
// table to the store; storage failures are logged and never returned, so
// the in-memory table stays authoritative for the rest of the run.
type Tracker struct {
	store   kv.Store
	entries map[string]Entry
	now     func() time.Time
	log     *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used for LastReviewedAt.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// New creates a tracker and loads the persisted table. A missing or
// unreadable table starts empty.
func New(ctx context.Context, store kv.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:   store,
		entries: make(map[string]Entry),
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.load(ctx)
	return t
}

func (t *Tracker) load(ctx context.Context) {
	raw, err := t.store.Get(ctx, StorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	if err != nil {
		t.log.Error("load progress", "key", StorageKey, "err", err)
		return
	}

	var table map[string]storedEntry
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		t.log.Error("decode progress", "key", StorageKey, "err", err)
		return
	}
	for id, se := range table {
		if se.CorrectCount < 0 || se.IncorrectCount < 0 {
			t.log.Warn("skip progress entry with negative counts", "character", id)
			continue
		}
		t.entries[id] = Entry{
			CharacterID:    id,
			CorrectCount:   se.CorrectCount,
			IncorrectCount: se.IncorrectCount,
			LastReviewedAt: se.LastReviewedAt,
			Mastered:       IsMastered(se.CorrectCount, se.IncorrectCount),
		}
	}
	t.log.Debug("progress loaded", "entries", len(t.entries))
}

func (t *Tracker) persist(ctx context.Context) {
	table := make(map[string]storedEntry, len(t.entries))
	for id, e := range t.entries {
		table[id] = storedEntry{
			CorrectCount:   e.CorrectCount,
			IncorrectCount: e.IncorrectCount,
			LastReviewedAt: e.LastReviewedAt,
			Mastered:       e.Mastered,
		}
	}
	b, err := json.Marshal(table)
	if err != nil {
		t.log.Error("encode progress", "err", err)
		return
	}
	if err := t.store.Set(ctx, StorageKey, string(b)); err != nil {
		t.log.Error("save progress", "key", StorageKey, "err", err)
	}
}

// RecordAnswer tallies one answer for the character and returns the
// updated entry. Calling it twice counts twice.
func (t *Tracker) RecordAnswer(ctx context.Context, characterID string, correct bool) Entry {
	e := t.Query(characterID)
	if correct {
		e.CorrectCount++
	} else {
		e.IncorrectCount++
	}
	e.LastReviewedAt = t.now()
	e.Mastered = IsMastered(e.CorrectCount, e.IncorrectCount)
	t.entries[characterID] = e

	t.persist(ctx)
	return e
}

// Query returns the entry for a character, or a zero entry if it has
// never been answered.
func (t *Tracker) Query(characterID string) Entry {
	if e, ok := t.entries[characterID]; ok {
		return e
	}
	return Entry{CharacterID: characterID}
}

// MasteredSet returns the characters whose progress is mastered.
func (t *Tracker) MasteredSet(chars []catalog.Character) []catalog.Character {
	var out []catalog.Character
	for _, ch := range chars {
		if t.Query(ch.ID).Mastered {
			out = append(out, ch)
		}
	}
	return out
}

// WeakSet returns characters with no progress yet or with more incorrect
// than correct answers.
func (t *Tracker) WeakSet(chars []catalog.Character) []catalog.Character {
	var out []catalog.Character
	for _, ch := range chars {
		if t.Query(ch.ID).Weak() {
			out = append(out, ch)
		}
	}
	return out
}

// Entries returns a copy of the table keyed by character ID.
func (t *Tracker) Entries() map[string]Entry {
	return maps.Clone(t.entries)
}

// Reset discards every entry and removes the persisted table.
func (t *Tracker) Reset(ctx context.Context) {
	t.entries = make(map[string]Entry)
	if err := t.store.Remove(ctx, StorageKey); err != nil {
		t.log.Error("remove progress", "key", StorageKey, "err", err)
	}
}
