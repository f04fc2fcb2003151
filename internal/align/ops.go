package align

import (
	"fmt"
	"unicode"
)

// Direction selects a move target.
type Direction int

const (
	Up Direction = iota
	Down
)

func (dir Direction) String() string {
	if dir == Down {
		return "down"
	}
	return "up"
}

// Operations below share one shape: validate every precondition against the
// live document, build a Command whose inverse is exact, then apply and
// record it in one shot. A failed validation returns before anything is
// touched, so operations never partially apply.

// Split cuts the cell text of col at a rune offset. The text before the
// offset stays in the row; the text after it moves to a new row inserted
// immediately below, with a fresh ID and an empty other column. Nothing is
// trimmed: splitting "Hello world." at 5 leaves "Hello" and creates
// " world." below.
func Split(d *Document, h *History, id RowID, col Column, offset int) (*Command, error) {
	row, i, ok := d.FindRow(id)
	if !ok {
		return nil, notFound(id)
	}
	text := []rune(row.Cell(col))
	if offset <= 0 || offset >= len(text) {
		return nil, &OpError{
			Code:   CodeInvalidSplitPoint,
			Row:    id,
			Column: col,
			Offset: offset,
			Msg:    fmt.Sprintf("offset %d not inside (0, %d)", offset, len(text)),
		}
	}
	before, after := string(text[:offset]), string(text[offset:])

	fresh := Row{ID: d.allocID()}
	if col == Target {
		fresh.Target = after
	} else {
		fresh.Source = after
	}
	cmd := &Command{
		Name:     "split",
		Affected: []RowID{id, fresh.ID},
		forward: []step{
			{kind: stepSetCell, index: i, col: col, text: before},
			{kind: stepInsertRow, index: i + 1, row: fresh},
		},
		inverse: []step{
			{kind: stepRemoveRow, index: i + 1},
			{kind: stepSetCell, index: i, col: col, text: row.Cell(col)},
		},
	}
	h.apply(d, cmd)
	return cmd, nil
}

// Merge joins a row with the row immediately below it, column by column,
// and removes the lower row. Undo restores the lower row with its original
// ID, cells, and position.
func Merge(d *Document, h *History, id RowID) (*Command, error) {
	row, i, ok := d.FindRow(id)
	if !ok {
		return nil, notFound(id)
	}
	if i+1 >= len(d.rows) {
		return nil, &OpError{Code: CodeNoRowBelow, Row: id, Msg: "row is the last row"}
	}
	below := d.rows[i+1]
	cmd := &Command{
		Name:     "merge",
		Affected: []RowID{id, below.ID},
		forward: []step{
			{kind: stepSetCell, index: i, col: Source, text: joinCells(row.Source, below.Source)},
			{kind: stepSetCell, index: i, col: Target, text: joinCells(row.Target, below.Target)},
			{kind: stepRemoveRow, index: i + 1},
		},
		inverse: []step{
			{kind: stepInsertRow, index: i + 1, row: below},
			{kind: stepSetCell, index: i, col: Target, text: row.Target},
			{kind: stepSetCell, index: i, col: Source, text: row.Source},
		},
	}
	h.apply(d, cmd)
	return cmd, nil
}

// joinCells concatenates two cells for a merge. Two non-empty cells get a
// single separating space unless one of them already has whitespace at the
// junction; an empty cell contributes nothing, no space added.
func joinCells(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	ra := []rune(a)
	rb := []rune(b)
	if unicode.IsSpace(ra[len(ra)-1]) || unicode.IsSpace(rb[0]) {
		return a + b
	}
	return a + " " + b
}

// Move swaps the whole row with its neighbor above or below. The inverse is
// the opposite move, so a move followed by its reverse is a no-op.
func Move(d *Document, h *History, id RowID, dir Direction) (*Command, error) {
	row, i, ok := d.FindRow(id)
	if !ok {
		return nil, notFound(id)
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(d.rows) {
		return nil, &OpError{
			Code: CodeAtBoundary,
			Row:  id,
			Msg:  fmt.Sprintf("cannot move %s from index %d", dir, i),
		}
	}
	cmd := &Command{
		Name:     "move_" + dir.String(),
		Affected: []RowID{row.ID, d.rows[j].ID},
		forward:  []step{{kind: stepSwapRows, index: i, other: j}},
		inverse:  []step{{kind: stepSwapRows, index: i, other: j}},
	}
	h.apply(d, cmd)
	return cmd, nil
}

// SetText replaces one cell's text, recording the old text for undo. The
// incoming text is sanitized like parsed segment text.
func SetText(d *Document, h *History, id RowID, col Column, text string) (*Command, error) {
	row, i, ok := d.FindRow(id)
	if !ok {
		return nil, notFound(id)
	}
	cmd := &Command{
		Name:     "set_text",
		Affected: []RowID{id},
		forward:  []step{{kind: stepSetCell, index: i, col: col, text: sanitizeCell(text)}},
		inverse:  []step{{kind: stepSetCell, index: i, col: col, text: row.Cell(col)}},
	}
	h.apply(d, cmd)
	return cmd, nil
}

// DeleteEmptyRow removes a row whose cells are both empty. Undo reinserts
// the row with its ID at its old position.
func DeleteEmptyRow(d *Document, h *History, id RowID) (*Command, error) {
	row, i, ok := d.FindRow(id)
	if !ok {
		return nil, notFound(id)
	}
	if row.Source != "" || row.Target != "" {
		return nil, &OpError{Code: CodeRowNotEmpty, Row: id, Msg: "cells are not empty"}
	}
	cmd := &Command{
		Name:     "delete_empty_row",
		Affected: []RowID{id},
		forward:  []step{{kind: stepRemoveRow, index: i}},
		inverse:  []step{{kind: stepInsertRow, index: i, row: row}},
	}
	h.apply(d, cmd)
	return cmd, nil
}
