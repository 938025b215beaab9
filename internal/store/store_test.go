package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
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
		// so journal_mode is checked in TestOpenFileDatabase.
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

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dojocards.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='kv_entries'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "kv_entries" {
		t.Errorf("table name = %q, want 'kv_entries'", name)
	}
}

func TestKVGetMissing(t *testing.T) {
	kv := openTestStore(t).KV()

	v, ok, err := kv.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || v != "" {
		t.Errorf("get absent = (%q, %v), want (\"\", false)", v, ok)
	}
}

func TestKVSetOverwrites(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	if err := kv.Set(ctx, "judo_flashcard_stats", `{"a":{"history":[true]}}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "judo_flashcard_stats", `{}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := kv.Get(ctx, "judo_flashcard_stats")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if v != `{}` {
		t.Errorf("value = %q, want %q", v, `{}`)
	}

	var count int
	if err := countRows(t, kv, &count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
}

func countRows(t *testing.T, kv KV, count *int) error {
	t.Helper()
	return kv.(*kvRepo).db.QueryRow("SELECT COUNT(*) FROM kv_entries").Scan(count)
}

func TestKVRemove(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Error("expected key to be gone after remove")
	}

	// Removing again is a no-op.
	if err := kv.Remove(ctx, "k"); err != nil {
		t.Errorf("second remove: %v", err)
	}
}

func TestKVKeysByPrefix(t *testing.T) {
	kv := openTestStore(t).KV()
	ctx := context.Background()

	for _, k := range []string{
		"judo_flashcard_session_gokyu_recite",
		"judo_flashcard_session_gokyu_all",
		"judo_flashcard_stats",
		"judoXflashcard_session_gokyu_perform",
		"JUDO_FLASHCARD_SESSION_gokyu_perform",
	} {
		if err := kv.Set(ctx, k, "{}"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := kv.Keys(ctx, "judo_flashcard_session_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	want := []string{"judo_flashcard_session_gokyu_all", "judo_flashcard_session_gokyu_recite"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "custom.db")
	t.Setenv("DOJOCARDS_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DOJOCARDS_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dir, "dojocards", "dojocards.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
