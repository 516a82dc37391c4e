package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"sermonpipe/internal/history"
	"sermonpipe/internal/testsupport"
)

func TestRecordAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	first, err := store.Record(ctx, history.Run{
		Kind:      "audio",
		StreamID:  "sermon-42",
		Date:      "2024-01-07",
		Output:    "output/sermon-42/2024-01-07.wav",
		StartedAt: base,
		Duration:  1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Fatal("expected an ID to be assigned")
	}
	if first.Status != history.StatusSucceeded {
		t.Fatalf("default status = %q", first.Status)
	}

	if _, err := store.Record(ctx, history.Run{
		Kind:         "video",
		StreamID:     "sermon-42",
		Date:         "2024-01-07",
		Status:       history.StatusFailed,
		ErrorKind:    "tool_execution",
		ErrorMessage: "ffmpeg exited 1",
		StartedAt:    base.Add(time.Minute),
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Kind != "video" || runs[0].Status != history.StatusFailed || runs[0].Output != "" {
		t.Fatalf("unexpected newest run: %#v", runs[0])
	}
	if runs[1].ID != first.ID || runs[1].Duration != 1500*time.Millisecond || !runs[1].StartedAt.Equal(base) {
		t.Fatalf("unexpected oldest run: %#v", runs[1])
	}

	limited, err := store.List(ctx, 1)
	if err != nil {
		t.Fatalf("List(1) failed: %v", err)
	}
	if len(limited) != 1 || limited[0].Kind != "video" {
		t.Fatalf("unexpected limited list: %#v", limited)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := store.Record(ctx, history.Run{Kind: "audio", StreamID: "s", Date: "2024-01-07"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenHistory(t, cfg)
	runs, err := reopened.List(ctx, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected persisted run, got %d", len(runs))
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := history.Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()
	if store.Path() != path {
		t.Fatalf("path = %q", store.Path())
	}
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	db.Close()

	_, err = history.Open(path)
	if !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
