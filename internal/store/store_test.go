package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readAll(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestFirstSaveCreatesNoBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.tmx")
	if err := Save(context.Background(), path, []byte("v1"), Options{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := readAll(t, path); got != "v1" {
		t.Fatalf("contents = %q, want %q", got, "v1")
	}
	if _, err := os.Stat(BackupPath(path)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("backup stat = %v, want not exist", err)
	}
}

func TestSecondSaveBacksUpPreviousContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.tmx")
	if err := Save(context.Background(), path, []byte("v1"), Options{}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := Save(context.Background(), path, []byte("v2"), Options{}); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if got := readAll(t, path); got != "v2" {
		t.Fatalf("contents = %q, want %q", got, "v2")
	}
	if got := readAll(t, BackupPath(path)); got != "v1" {
		t.Fatalf("backup = %q, want %q", got, "v1")
	}
}

func TestNoBackupOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.tmx")
	if err := Save(context.Background(), path, []byte("v1"), Options{}); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := Save(context.Background(), path, []byte("v2"), Options{NoBackup: true}); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if _, err := os.Stat(BackupPath(path)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("backup stat = %v, want not exist", err)
	}
}

func TestCancelledSaveKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mem.tmx")
	if err := Save(context.Background(), path, []byte("v1"), Options{}); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Save(ctx, path, []byte("v2"), Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	var se *SaveError
	if !errors.As(err, &se) || se.Stage != StageRename {
		t.Fatalf("err = %#v, want SaveError at rename stage", err)
	}
	if got := readAll(t, path); got != "v1" {
		t.Fatalf("contents = %q, want original %q", got, "v1")
	}

	// the aborted temp file must not linger
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "mem.tmx" && e.Name() != "mem.tmx.bak" {
			t.Fatalf("leftover file %q", e.Name())
		}
	}
}

func TestSaveIntoMissingDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "mem.tmx")
	err := Save(context.Background(), path, []byte("v1"), Options{})
	var se *SaveError
	if !errors.As(err, &se) || se.Stage != StageWrite {
		t.Fatalf("err = %v, want SaveError at write stage", err)
	}
}
