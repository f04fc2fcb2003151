package align

import "github.com/google/uuid"

// EditSession is the capability handed out for editing one cell. It is the
// front-end's ticket: opened before the user types, consumed by Commit,
// and stale the moment the cell changes under it. The token identifies the
// session in logs.
type EditSession struct {
	Token  uuid.UUID
	Row    RowID
	Column Column

	original string
	done     bool
}

// BeginEdit opens an edit session for a cell, capturing its current text.
func BeginEdit(d *Document, id RowID, col Column) (*EditSession, error) {
	row, _, ok := d.FindRow(id)
	if !ok {
		return nil, notFound(id)
	}
	return &EditSession{
		Token:    uuid.New(),
		Row:      id,
		Column:   col,
		original: row.Cell(col),
	}, nil
}

// Original returns the cell text captured when the session was opened.
func (s *EditSession) Original() string { return s.original }

// Commit turns the session into a SetText command and consumes it. A
// session is single-use; committing a second time fails. If the row was
// removed in the meantime the commit fails NotFound, and if the cell text
// changed it fails EditConflict. Committing unchanged text is a no-op:
// no command is recorded and the command result is nil.
func (s *EditSession) Commit(d *Document, h *History, text string) (*Command, error) {
	if s.done {
		return nil, &OpError{Code: CodeSessionUsed, Row: s.Row, Column: s.Column, Msg: "session already consumed"}
	}
	s.done = true
	row, _, ok := d.FindRow(s.Row)
	if !ok {
		return nil, notFound(s.Row)
	}
	if row.Cell(s.Column) != s.original {
		return nil, &OpError{Code: CodeEditConflict, Row: s.Row, Column: s.Column, Msg: "cell changed during edit"}
	}
	if sanitizeCell(text) == s.original {
		return nil, nil
	}
	return SetText(d, h, s.Row, s.Column, text)
}

// Cancel voids the session without touching the document.
func (s *EditSession) Cancel() { s.done = true }
