package main

import (
	"io"
	"path/filepath"
	"testing"
)

func TestRunReturnsDatabaseError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "missing", "arena.db")
	if err := run(cfg, NewLogger(io.Discard, "error")); err == nil {
		t.Error("expected an error for an unopenable database")
	}
}

func TestRunReturnsListenErrorAfterOpeningDatabase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "not-an-address"
	cfg.DBPath = filepath.Join(t.TempDir(), "arena.db")
	if err := run(cfg, NewLogger(io.Discard, "error")); err == nil {
		t.Fatal("expected a listen error")
	}

	// deferred cleanup closed the database, so it can be reopened and written
	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	if _, err := db.conn.Exec(`INSERT INTO analytics_events (event_type, mode, created_at) VALUES ('x', 'tank', '2026-01-01')`); err != nil {
		t.Errorf("write after run: %v", err)
	}
}
