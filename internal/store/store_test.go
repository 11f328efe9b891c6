package store

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kanaflash/internal/kv"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestFileDatabase.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kanaflash.db")
	require.NoError(t, EnsureDir(path))

	s, err := Open(path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	ctx := context.Background()
	require.NoError(t, s.KV().Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	// Reopening must not re-run migrations or lose data.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.KV().Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	var applied, version int
	require.NoError(t, s.DB().QueryRow(
		"SELECT COUNT(*), MAX(version_id) FROM schema_migrations WHERE version_id > 0 AND is_applied").
		Scan(&applied, &version))
	assert.Equal(t, 2, applied, "each migration should be recorded once")
	assert.Equal(t, 2, version)
}

func TestKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.KV()
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, repo.Set(ctx, "theme", `{"darkMode":true}`))
	require.NoError(t, repo.Set(ctx, "theme", `{"darkMode":false}`))

	got, err := repo.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, `{"darkMode":false}`, got)

	require.NoError(t, repo.Remove(ctx, "theme"))
	require.NoError(t, repo.Remove(ctx, "theme"), "removing a missing key is not an error")

	_, err = repo.Get(ctx, "theme")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestKVKeysAreIndependent(t *testing.T) {
	s := openTestStore(t)
	repo := s.KV()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", "1"))
	require.NoError(t, repo.Set(ctx, "b", "2"))
	require.NoError(t, repo.Remove(ctx, "a"))

	got, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func testRecord(id string, ended time.Time) SessionRecord {
	return SessionRecord{
		ID:        id,
		Mode:      "character-to-sound",
		StartedAt: ended.Add(-2 * time.Minute),
		EndedAt:   ended,
		DeckSize:  10,
		Answered:  8,
		Correct:   6,
		Completed: false,
	}
}

func TestSessionAppendAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	first := testRecord("s1", base)
	second := testRecord("s2", base.Add(time.Hour))
	second.Completed = true
	second.Answered = 10

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	got, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "s2", got[0].ID, "newest first")
	assert.True(t, got[0].Completed)
	assert.Equal(t, second.StartedAt, got[0].StartedAt)
	assert.Equal(t, 2*time.Minute, got[1].Duration())
	assert.InDelta(t, 0.75, got[1].Accuracy(), 1e-9)

	limited, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "s2", limited[0].ID)
}

func TestSessionPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"s1", "s2", "s3", "s4"} {
		require.NoError(t, repo.Append(ctx, testRecord(id, base.Add(time.Duration(i)*time.Minute))))
	}

	require.NoError(t, repo.Prune(ctx, 10), "pruning above count is a no-op")
	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	require.NoError(t, repo.Prune(ctx, 2))
	all, err = repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "s4", all[0].ID)
	assert.Equal(t, "s3", all[1].ID)

	require.NoError(t, repo.Prune(ctx, 0), "non-positive keep is a no-op")
	all, err = repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Clear(ctx))
	all, err = repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSessionPruneTiedEndTimes(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	require.NoError(t, repo.Clear(ctx))

	ended := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	for _, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, repo.Append(ctx, testRecord(id, ended)))
	}

	require.NoError(t, repo.Prune(ctx, 2))
	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2, "sessions sharing an end time must survive up to keep")
	assert.Equal(t, "t3", all[0].ID)
	assert.Equal(t, "t2", all[1].ID)
}

func TestGooseLoggerWritesToSlog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	var l slogGooseLogger
	l.Printf("OK %s", "001_kv_entries.sql")
	l.Fatalf("failed %d", 2)

	out := buf.String()
	assert.Contains(t, out, "OK 001_kv_entries.sql")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=migrate")
}
