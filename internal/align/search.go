package align

import (
	"strings"
	"unicode"
)

// FindOptions controls a cell search.
type FindOptions struct {
	CaseSensitive bool
	Backward      bool
	// FromRow and FromColumn give the cell after which (before which, when
	// Backward) the scan starts. A negative FromRow starts from the
	// document edge.
	FromRow    int
	FromColumn Column
}

// Match locates a search hit.
type Match struct {
	Row    RowID
	Index  int
	Column Column
}

// Find scans cells in reading order (source before target), wrapping
// around the document, and returns the first cell containing the query.
// The starting cell itself is probed last, so repeated finds cycle through
// every hit.
func Find(d *Document, query string, opts FindOptions) (Match, bool) {
	if query == "" || len(d.rows) == 0 {
		return Match{}, false
	}
	needle := query
	if !opts.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	n := len(d.rows) * 2
	start := n - 1
	if opts.Backward {
		start = 0
	}
	if opts.FromRow >= 0 && opts.FromRow < len(d.rows) {
		start = opts.FromRow*2 + int(opts.FromColumn)
	}
	for k := 1; k <= n; k++ {
		cell := (start + k) % n
		if opts.Backward {
			cell = ((start-k)%n + n) % n
		}
		ri, col := cell/2, Column(cell%2)
		text := d.rows[ri].Cell(col)
		if !opts.CaseSensitive {
			text = strings.ToLower(text)
		}
		if strings.Contains(text, needle) {
			return Match{Row: d.rows[ri].ID, Index: ri, Column: col}, true
		}
	}
	return Match{}, false
}

// ReplaceAll substitutes every occurrence of query in every cell. All the
// resulting SetText commands share one undo group, so a single Undo
// reverts the whole pass. Returns the number of cells changed.
func ReplaceAll(d *Document, h *History, query, replacement string, caseSensitive bool) (int, error) {
	if query == "" {
		return 0, nil
	}
	type change struct {
		id   RowID
		col  Column
		text string
	}
	var changes []change
	for _, r := range d.rows {
		for _, col := range []Column{Source, Target} {
			cell := r.Cell(col)
			next, hits := replaceInCell(cell, query, replacement, caseSensitive)
			if hits > 0 && next != cell {
				changes = append(changes, change{r.ID, col, next})
			}
		}
	}
	if len(changes) == 0 {
		return 0, nil
	}
	h.BeginMacro()
	defer h.EndMacro()
	for _, ch := range changes {
		if _, err := SetText(d, h, ch.id, ch.col, ch.text); err != nil {
			return 0, err
		}
	}
	return len(changes), nil
}

// replaceInCell is strings.ReplaceAll with an optional case-insensitive
// needle. Matching folds rune by rune, so the unmatched text keeps its
// original form.
func replaceInCell(s, old, new string, caseSensitive bool) (string, int) {
	if caseSensitive {
		n := strings.Count(s, old)
		if n == 0 {
			return s, 0
		}
		return strings.ReplaceAll(s, old, new), n
	}
	rs, ro := []rune(s), []rune(old)
	var b strings.Builder
	hits := 0
	for i := 0; i < len(rs); {
		if i+len(ro) <= len(rs) && foldEqual(rs[i:i+len(ro)], ro) {
			b.WriteString(new)
			i += len(ro)
			hits++
			continue
		}
		b.WriteRune(rs[i])
		i++
	}
	if hits == 0 {
		return s, 0
	}
	return b.String(), hits
}

func foldEqual(a, b []rune) bool {
	for i := range b {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}
