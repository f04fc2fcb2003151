package align

import (
	"errors"
	"fmt"
)

// History sentinels.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// OpCode classifies why an edit operation was rejected.
type OpCode string

const (
	CodeNotFound          OpCode = "row_not_found"
	CodeInvalidSplitPoint OpCode = "invalid_split_point"
	CodeNoRowBelow        OpCode = "no_row_below"
	CodeAtBoundary        OpCode = "at_boundary"
	CodeRowNotEmpty       OpCode = "row_not_empty"
	CodeEditConflict      OpCode = "edit_conflict"
	CodeSessionUsed       OpCode = "session_used"
)

// OpError is a rejected edit operation. The document and history are
// guaranteed unchanged when one is returned.
type OpError struct {
	Code   OpCode
	Row    RowID
	Column Column
	Offset int
	Msg    string
}

func (e *OpError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: row %d: %s", e.Code, e.Row, e.Msg)
	}
	return fmt.Sprintf("%s: row %d", e.Code, e.Row)
}

func notFound(id RowID) *OpError {
	return &OpError{Code: CodeNotFound, Row: id, Msg: "no such row"}
}

func hasCode(err error, code OpCode) bool {
	var oe *OpError
	return errors.As(err, &oe) && oe.Code == code
}

// IsNotFound reports whether err rejects an unknown row ID.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidSplitPoint reports whether err rejects a split offset.
func IsInvalidSplitPoint(err error) bool { return hasCode(err, CodeInvalidSplitPoint) }

// IsNoRowBelow reports whether err rejects a merge on the last row.
func IsNoRowBelow(err error) bool { return hasCode(err, CodeNoRowBelow) }

// IsAtBoundary reports whether err rejects a move off the table edge.
func IsAtBoundary(err error) bool { return hasCode(err, CodeAtBoundary) }

// IsRowNotEmpty reports whether err rejects deleting a non-empty row.
func IsRowNotEmpty(err error) bool { return hasCode(err, CodeRowNotEmpty) }

// IsEditConflict reports whether err rejects a stale edit session.
func IsEditConflict(err error) bool { return hasCode(err, CodeEditConflict) }

// IsSessionUsed reports whether err rejects a consumed edit session.
func IsSessionUsed(err error) bool { return hasCode(err, CodeSessionUsed) }
