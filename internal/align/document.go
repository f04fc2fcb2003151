package align

import "strings"

// RowID identifies a row for the lifetime of a document. IDs come from a
// monotonic counter and are never reused, so they survive splits, merges,
// moves, and deletions. They are not persisted: reloading a file assigns
// fresh IDs.
type RowID int64

// Column selects the source or target cell of a row.
type Column int

const (
	Source Column = iota
	Target
)

func (c Column) String() string {
	if c == Target {
		return "target"
	}
	return "source"
}

// Row is one aligned segment pair.
type Row struct {
	ID     RowID
	Source string
	Target string
}

// Cell returns the text of the given column.
func (r Row) Cell(c Column) string {
	if c == Target {
		return r.Target
	}
	return r.Source
}

// Pair seeds one row of a new document.
type Pair struct {
	Source string
	Target string
}

// Document is the ordered alignment table. The row slice is the only order
// there is; there is no separate display order.
type Document struct {
	SourceLang string
	TargetLang string

	rows       []Row
	nextID     RowID
	originPath string
	dirty      bool

	// id lookup, rebuilt lazily after structural changes
	index      map[RowID]int
	indexStale bool
}

// NewDocument builds a document from aligned pairs. Rows get IDs 0..n-1 in
// order and cell text is sanitized.
func NewDocument(sourceLang, targetLang string, pairs []Pair) *Document {
	d := &Document{
		SourceLang: sourceLang,
		TargetLang: targetLang,
		rows:       make([]Row, 0, len(pairs)),
	}
	for _, p := range pairs {
		d.rows = append(d.rows, Row{
			ID:     d.nextID,
			Source: sanitizeCell(p.Source),
			Target: sanitizeCell(p.Target),
		})
		d.nextID++
	}
	return d
}

// NewEmptyDocument returns a document with no rows.
func NewEmptyDocument(sourceLang, targetLang string) *Document {
	return &Document{SourceLang: sourceLang, TargetLang: targetLang}
}

// RowCount returns the number of rows.
func (d *Document) RowCount() int { return len(d.rows) }

// RowAt returns a copy of the row at index. Callers cannot mutate cells
// behind the history's back.
func (d *Document) RowAt(i int) Row { return d.rows[i] }

// Rows returns a copy of all rows in order.
func (d *Document) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// FindRow returns the row with the given ID and its current index, or
// ok=false when the ID was never assigned or its row was removed.
func (d *Document) FindRow(id RowID) (Row, int, bool) {
	d.reindex()
	i, ok := d.index[id]
	if !ok {
		return Row{}, 0, false
	}
	return d.rows[i], i, true
}

func (d *Document) reindex() {
	if d.index != nil && !d.indexStale {
		return
	}
	d.index = make(map[RowID]int, len(d.rows))
	for i, r := range d.rows {
		d.index[r.ID] = i
	}
	d.indexStale = false
}

// Dirty reports whether the document differs from its last persisted state.
func (d *Document) Dirty() bool { return d.dirty }

// OriginPath returns the file the document was loaded from or last saved
// to, empty for a fresh document.
func (d *Document) OriginPath() string { return d.originPath }

// SetOriginPath records where the document lives on disk.
func (d *Document) SetOriginPath(path string) { d.originPath = path }

// Mutators below are unexported: the only callers are command steps, so the
// history sees every change.

func (d *Document) setCell(i int, c Column, text string) {
	if c == Target {
		d.rows[i].Target = text
	} else {
		d.rows[i].Source = text
	}
}

func (d *Document) insertRow(i int, r Row) {
	d.rows = append(d.rows, Row{})
	copy(d.rows[i+1:], d.rows[i:])
	d.rows[i] = r
	d.indexStale = true
}

func (d *Document) removeRow(i int) {
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
	d.indexStale = true
}

func (d *Document) swapRows(i, j int) {
	d.rows[i], d.rows[j] = d.rows[j], d.rows[i]
	d.indexStale = true
}

func (d *Document) allocID() RowID {
	id := d.nextID
	d.nextID++
	return id
}

func (d *Document) setDirty(v bool) { d.dirty = v }

// sanitizeCell keeps cells single-line: the newline that joins and splits
// cells internally must never appear inside one. Runs of CR/LF collapse to
// a single space.
func sanitizeCell(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inBreak := false
	for _, r := range s {
		if r == '\r' || r == '\n' {
			if !inBreak {
				b.WriteByte(' ')
				inBreak = true
			}
			continue
		}
		inBreak = false
		b.WriteRune(r)
	}
	return b.String()
}
