package align

// stepKind enumerates the primitive mutations commands are made of.
type stepKind int

const (
	stepSetCell stepKind = iota
	stepInsertRow
	stepRemoveRow
	stepSwapRows
)

// step is one primitive mutation. Operations validate everything up front,
// so applying a recorded step never fails. Indexes are positions in the
// document state the step was recorded against; the history only ever
// replays a step on exactly that state.
type step struct {
	kind  stepKind
	index int
	col   Column // stepSetCell
	text  string // stepSetCell
	row   Row    // stepInsertRow payload
	other int    // stepSwapRows partner
}

func (s step) apply(d *Document) {
	switch s.kind {
	case stepSetCell:
		d.setCell(s.index, s.col, s.text)
	case stepInsertRow:
		d.insertRow(s.index, s.row)
	case stepRemoveRow:
		d.removeRow(s.index)
	case stepSwapRows:
		d.swapRows(s.index, s.other)
	}
}

// Command is one committed edit operation: a name for logs, the forward and
// inverse mutations, and the row IDs it touched. Undo runs the inverse
// list, redo the forward list; both lists are complete and ordered, no
// reversal happens at replay time.
type Command struct {
	Name     string
	Affected []RowID

	group   uint64
	forward []step
	inverse []step
}

// Group returns the undo group the command belongs to. Commands recorded
// inside one macro share a group and undo together.
func (c *Command) Group() uint64 { return c.group }

func (c *Command) runForward(d *Document) {
	for _, s := range c.forward {
		s.apply(d)
	}
}

func (c *Command) runInverse(d *Document) {
	for _, s := range c.inverse {
		s.apply(d)
	}
}
