// Package app ties a document, its history, persistence, and session state
// together behind one facade. Methods are single-goroutine; the only
// concurrency is a background save, and every editing entry point is gated
// until WaitSave collects its result.
package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/kobzarvs/tmxalign/internal/align"
	"github.com/kobzarvs/tmxalign/internal/config"
	"github.com/kobzarvs/tmxalign/internal/logger"
	"github.com/kobzarvs/tmxalign/internal/session"
	"github.com/kobzarvs/tmxalign/internal/store"
	"github.com/kobzarvs/tmxalign/internal/tmx"
)

var (
	ErrNoDocument   = errors.New("app: no document is open")
	ErrSaveInFlight = errors.New("app: a background save is in progress")
	ErrNoPath       = errors.New("app: document has no file path")
)

// App is the top-level editing state for one open document.
type App struct {
	cfg  config.Config
	sess *session.Manager
	doc  *align.Document
	hist *align.History

	saving      bool
	pendingPath string
	saveDone    chan error
}

// New builds an App. A failing session store is logged and ignored; the
// editor works without one.
func New(cfg config.Config) *App {
	a := &App{cfg: cfg}
	sm, err := session.NewManager(cfg.Editor.AutosaveSession)
	if err != nil {
		logger.Warn("session state unavailable", "error", err)
	} else {
		a.sess = sm
	}
	return a
}

// Open loads a TMX file and resets the undo history.
func (a *App) Open(path string) error {
	if a.saving {
		return ErrSaveInFlight
	}
	doc, err := tmx.ParseFile(path)
	if err != nil {
		return err
	}
	a.doc = doc
	a.hist = align.NewHistory()
	if a.sess != nil {
		a.sess.SetActiveFile(sessionKey(path))
	}
	logger.Info("file opened",
		"path", path,
		"rows", doc.RowCount(),
		"languages", doc.SourceLang+"/"+doc.TargetLang)
	return nil
}

// NewFile replaces the open document with an empty one.
func (a *App) NewFile(sourceLang, targetLang string) error {
	if a.saving {
		return ErrSaveInFlight
	}
	a.doc = align.NewEmptyDocument(sourceLang, targetLang)
	a.hist = align.NewHistory()
	return nil
}

// Save writes the document back to the file it came from.
func (a *App) Save() error {
	if err := a.editable(); err != nil {
		return err
	}
	path := a.doc.OriginPath()
	if path == "" {
		return ErrNoPath
	}
	return a.saveTo(path)
}

// SaveAs writes the document to path, which becomes its origin.
func (a *App) SaveAs(path string) error {
	if err := a.editable(); err != nil {
		return err
	}
	return a.saveTo(path)
}

func (a *App) saveTo(path string) error {
	data, err := tmx.Serialize(a.doc)
	if err != nil {
		return err
	}
	opts := store.Options{NoBackup: !a.cfg.Editor.BackupOnSave}
	if err := store.Save(context.Background(), path, data, opts); err != nil {
		return err
	}
	a.finishSave(path)
	return nil
}

// SaveInBackground serializes the document now and writes the bytes on a
// separate goroutine. Until WaitSave collects the result the app refuses
// edits, so the snapshot on disk always matches a history state.
func (a *App) SaveInBackground(ctx context.Context) error {
	if err := a.editable(); err != nil {
		return err
	}
	path := a.doc.OriginPath()
	if path == "" {
		return ErrNoPath
	}
	data, err := tmx.Serialize(a.doc)
	if err != nil {
		return err
	}
	opts := store.Options{NoBackup: !a.cfg.Editor.BackupOnSave}
	a.saving = true
	a.pendingPath = path
	a.saveDone = make(chan error, 1)
	go func() {
		a.saveDone <- store.Save(ctx, path, data, opts)
	}()
	return nil
}

// Saving reports whether a background save is still pending.
func (a *App) Saving() bool { return a.saving }

// WaitSave blocks until the pending background save finishes and reports
// its result. Editing unlocks either way.
func (a *App) WaitSave() error {
	if !a.saving {
		return nil
	}
	err := <-a.saveDone
	a.saving = false
	if err != nil {
		logger.Error("background save failed", "path", a.pendingPath, "error", err)
		return err
	}
	a.finishSave(a.pendingPath)
	return nil
}

func (a *App) finishSave(path string) {
	a.doc.SetOriginPath(path)
	a.hist.MarkSaved(a.doc)
	if a.sess != nil {
		a.sess.SetActiveFile(sessionKey(path))
	}
	logger.Info("file saved", "path", path, "rows", a.doc.RowCount())
}

func (a *App) editable() error {
	if a.doc == nil {
		return ErrNoDocument
	}
	if a.saving {
		return ErrSaveInFlight
	}
	return nil
}

// Split cuts a cell at a rune offset, pushing the tail into a new row.
func (a *App) Split(id align.RowID, col align.Column, offset int) error {
	if err := a.editable(); err != nil {
		return err
	}
	cmd, err := align.Split(a.doc, a.hist, id, col, offset)
	if err != nil {
		return err
	}
	a.logCommand(cmd)
	return nil
}

// Merge joins a row with the one below it.
func (a *App) Merge(id align.RowID) error {
	if err := a.editable(); err != nil {
		return err
	}
	cmd, err := align.Merge(a.doc, a.hist, id)
	if err != nil {
		return err
	}
	a.logCommand(cmd)
	return nil
}

// MoveUp swaps a row with its upper neighbor.
func (a *App) MoveUp(id align.RowID) error { return a.move(id, align.Up) }

// MoveDown swaps a row with its lower neighbor.
func (a *App) MoveDown(id align.RowID) error { return a.move(id, align.Down) }

func (a *App) move(id align.RowID, dir align.Direction) error {
	if err := a.editable(); err != nil {
		return err
	}
	cmd, err := align.Move(a.doc, a.hist, id, dir)
	if err != nil {
		return err
	}
	a.logCommand(cmd)
	return nil
}

// SetText replaces one cell's text.
func (a *App) SetText(id align.RowID, col align.Column, text string) error {
	if err := a.editable(); err != nil {
		return err
	}
	cmd, err := align.SetText(a.doc, a.hist, id, col, text)
	if err != nil {
		return err
	}
	a.logCommand(cmd)
	return nil
}

// DeleteEmptyRow removes a row whose two cells are empty.
func (a *App) DeleteEmptyRow(id align.RowID) error {
	if err := a.editable(); err != nil {
		return err
	}
	cmd, err := align.DeleteEmptyRow(a.doc, a.hist, id)
	if err != nil {
		return err
	}
	a.logCommand(cmd)
	return nil
}

// BeginEdit opens an edit session for a cell.
func (a *App) BeginEdit(id align.RowID, col align.Column) (*align.EditSession, error) {
	if err := a.editable(); err != nil {
		return nil, err
	}
	return align.BeginEdit(a.doc, id, col)
}

// CommitEdit consumes an edit session, recording the new text.
func (a *App) CommitEdit(es *align.EditSession, text string) error {
	if err := a.editable(); err != nil {
		return err
	}
	cmd, err := es.Commit(a.doc, a.hist, text)
	if err != nil {
		return err
	}
	if cmd != nil {
		a.logCommand(cmd)
	}
	return nil
}

// Undo reverts the most recent command group.
func (a *App) Undo() error {
	if err := a.editable(); err != nil {
		return err
	}
	if err := a.hist.Undo(a.doc); err != nil {
		return err
	}
	logger.Debug("undo", "cursor", a.hist.Cursor())
	return nil
}

// Redo reapplies the next command group.
func (a *App) Redo() error {
	if err := a.editable(); err != nil {
		return err
	}
	if err := a.hist.Redo(a.doc); err != nil {
		return err
	}
	logger.Debug("redo", "cursor", a.hist.Cursor())
	return nil
}

// Find scans cells for query, wrapping around the document.
func (a *App) Find(query string, opts align.FindOptions) (align.Match, bool) {
	if a.doc == nil {
		return align.Match{}, false
	}
	return align.Find(a.doc, query, opts)
}

// ReplaceAll substitutes query in every cell as one undo step. Returns the
// number of cells changed.
func (a *App) ReplaceAll(query, replacement string, caseSensitive bool) (int, error) {
	if err := a.editable(); err != nil {
		return 0, err
	}
	n, err := align.ReplaceAll(a.doc, a.hist, query, replacement, caseSensitive)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Debug("replace all", "query", query, "cells", n)
	}
	return n, nil
}

func (a *App) logCommand(cmd *align.Command) {
	logger.Debug("command applied", "op", cmd.Name, "rows", cmd.Affected)
}

// Document returns the open document, nil when none is open.
func (a *App) Document() *align.Document { return a.doc }

// Dirty reports whether the open document has unsaved changes.
func (a *App) Dirty() bool { return a.doc != nil && a.doc.Dirty() }

// Path returns the open document's file path.
func (a *App) Path() string {
	if a.doc == nil {
		return ""
	}
	return a.doc.OriginPath()
}

// CanUndo reports whether Undo would do anything.
func (a *App) CanUndo() bool { return a.hist != nil && a.hist.CanUndo() }

// CanRedo reports whether Redo would do anything.
func (a *App) CanRedo() bool { return a.hist != nil && a.hist.CanRedo() }

// RememberSelection stores the cursor position for the open file.
func (a *App) RememberSelection(row int, col align.Column, scroll int) {
	if a.sess == nil || a.Path() == "" {
		return
	}
	a.sess.SetFileState(sessionKey(a.Path()), session.FileState{
		SelectedRow:    row,
		SelectedColumn: int(col),
		ScrollRow:      scroll,
	})
}

// RestoreSelection returns the saved cursor position for the open file.
func (a *App) RestoreSelection() (session.FileState, bool) {
	if a.sess == nil || a.Path() == "" {
		return session.FileState{}, false
	}
	return a.sess.GetFileState(sessionKey(a.Path()))
}

// Close flushes session state. The document itself is not saved.
func (a *App) Close() {
	if a.sess != nil {
		a.sess.Stop()
	}
}

func sessionKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
