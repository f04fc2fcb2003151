// Package align holds the alignment table of a translation-memory document:
// ordered rows of source/target segment pairs, the edit operations that
// restructure them, and the undo history those operations feed.
//
// A Document and its History belong to a single goroutine. All mutation
// flows through the operation functions (Split, Merge, Move, SetText,
// DeleteEmptyRow) so that every change is recorded as an invertible
// Command; the document's own mutators are unexported and nothing outside
// this package can bypass the history.
package align
