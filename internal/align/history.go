package align

// History is the undo stack: an append-only command sequence with an index
// cursor. Commands before the cursor are applied and undoable; commands at
// and after it are redoable. Recording a new command discards the redo tail
// for good. There is no cap on depth.
//
// The history also owns the save point, the cursor value at the last
// successful save. The document is dirty exactly when the cursor has moved
// away from it.
type History struct {
	items      []*Command
	at         int
	savePoint  int // -1 once the saved state was truncated away
	group      uint64
	macroDepth int
}

func NewHistory() *History {
	return &History{}
}

// Len returns the number of recorded commands.
func (h *History) Len() int { return len(h.items) }

// Cursor returns how many commands are currently applied.
func (h *History) Cursor() int { return h.at }

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return h.at > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return h.at < len(h.items) }

// apply runs the command forward and records it. Called by the operation
// functions once validation has passed.
func (h *History) apply(d *Document, c *Command) {
	c.runForward(d)
	if h.macroDepth == 0 {
		h.group++
	}
	c.group = h.group
	if h.at < len(h.items) {
		h.items = h.items[:h.at]
		if h.savePoint > h.at {
			h.savePoint = -1
		}
	}
	h.items = append(h.items, c)
	h.at++
	h.updateDirty(d)
}

// Undo reverts the most recent command group. Commands sharing a group
// (macros) are undone together.
func (h *History) Undo(d *Document) error {
	if h.at == 0 {
		return ErrNothingToUndo
	}
	group := h.items[h.at-1].group
	for h.at > 0 && h.items[h.at-1].group == group {
		h.at--
		h.items[h.at].runInverse(d)
	}
	h.updateDirty(d)
	return nil
}

// Redo reapplies the next command group.
func (h *History) Redo(d *Document) error {
	if h.at >= len(h.items) {
		return ErrNothingToRedo
	}
	group := h.items[h.at].group
	for h.at < len(h.items) && h.items[h.at].group == group {
		h.items[h.at].runForward(d)
		h.at++
	}
	h.updateDirty(d)
	return nil
}

// BeginMacro makes subsequent commands share one undo group until EndMacro.
// Nested macros flatten into the outermost group.
func (h *History) BeginMacro() {
	if h.macroDepth == 0 {
		h.group++
	}
	h.macroDepth++
}

// EndMacro closes the current macro.
func (h *History) EndMacro() {
	if h.macroDepth > 0 {
		h.macroDepth--
	}
}

// MarkSaved pins the current cursor as the persisted state and clears the
// document's dirty flag. Call only after the file actually hit disk.
func (h *History) MarkSaved(d *Document) {
	h.savePoint = h.at
	h.updateDirty(d)
}

func (h *History) updateDirty(d *Document) {
	d.setDirty(h.at != h.savePoint)
}
