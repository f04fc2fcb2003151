// Package store writes serialized documents to disk atomically. A save
// copies the previous file contents to a .bak sibling, streams the new
// bytes into a temp file in the destination directory, and publishes
// them with a rename. A failed or cancelled save leaves the destination
// untouched.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kobzarvs/tmxalign/internal/logger"
)

// Stage names the phase of a save attempt.
type Stage string

const (
	StageBackup Stage = "backup"
	StageWrite  Stage = "write"
	StageRename Stage = "rename"
)

// SaveError reports a failed save and the stage it failed in.
type SaveError struct {
	Path  string
	Stage Stage
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save %s: %s: %v", e.Path, e.Stage, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Options control a single save.
type Options struct {
	// NoBackup skips refreshing the .bak copy of the previous contents.
	NoBackup bool
}

// BackupPath returns the sibling backup file for path.
func BackupPath(path string) string { return path + ".bak" }

// Save writes data to path. Cancellation is honored up to the final
// rename; once the rename starts the save runs to completion.
func Save(ctx context.Context, path string, data []byte, opts Options) error {
	if !opts.NoBackup {
		if err := backup(path); err != nil {
			return &SaveError{Path: path, Stage: StageBackup, Err: err}
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &SaveError{Path: path, Stage: StageWrite, Err: err}
	}
	tmpPath := tmp.Name()
	if err := writeAll(tmp, data); err != nil {
		os.Remove(tmpPath)
		return &SaveError{Path: path, Stage: StageWrite, Err: err}
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmpPath)
		return &SaveError{Path: path, Stage: StageRename, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &SaveError{Path: path, Stage: StageRename, Err: err}
	}
	logger.Debug("document saved", "path", path, "bytes", len(data))
	return nil
}

func writeAll(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// backup copies the current contents of path to its .bak sibling. A
// missing original is a first save; there is nothing to preserve.
func backup(path string) error {
	src, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(BackupPath(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
