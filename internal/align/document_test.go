package align

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestDoc(pairs ...Pair) (*Document, *History) {
	return NewDocument("en", "fr", pairs), NewHistory()
}

func TestNewDocumentAssignsSequentialIDs(t *testing.T) {
	d := NewDocument("en", "fr", []Pair{{"a", "b"}, {"c", "d"}, {"e", "f"}})
	if d.RowCount() != 3 {
		t.Fatalf("RowCount = %d, want 3", d.RowCount())
	}
	for i := 0; i < d.RowCount(); i++ {
		if d.RowAt(i).ID != RowID(i) {
			t.Fatalf("row %d ID = %d, want %d", i, d.RowAt(i).ID, i)
		}
	}
	if d.Dirty() {
		t.Fatal("fresh document reports dirty")
	}
	if d.SourceLang != "en" || d.TargetLang != "fr" {
		t.Fatalf("langs = %q/%q, want en/fr", d.SourceLang, d.TargetLang)
	}
}

func TestFindRowTracksStructuralChanges(t *testing.T) {
	d, h := newTestDoc(Pair{"one two", "x"}, Pair{"three", "y"})

	if _, err := Split(d, h, 0, Source, 4); err != nil {
		t.Fatalf("Split: %v", err)
	}
	// rows are now [0, 2, 1]
	wantIndex := map[RowID]int{0: 0, 2: 1, 1: 2}
	for id, want := range wantIndex {
		_, i, ok := d.FindRow(id)
		if !ok {
			t.Fatalf("FindRow(%d) not found", id)
		}
		if i != want {
			t.Fatalf("FindRow(%d) index = %d, want %d", id, i, want)
		}
	}

	if _, err := Move(d, h, 1, Up); err != nil {
		t.Fatalf("Move: %v", err)
	}
	_, i, ok := d.FindRow(1)
	if !ok || i != 1 {
		t.Fatalf("after move, FindRow(1) = (%d, %v), want index 1", i, ok)
	}
}

func TestFindRowUnknownID(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"b", "y"})
	if _, _, ok := d.FindRow(99); ok {
		t.Fatal("FindRow(99) reported a row")
	}
	if _, err := Merge(d, h, 0); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if _, _, ok := d.FindRow(1); ok {
		t.Fatal("FindRow found a merged-away row")
	}
}

func TestCellTextIsSanitized(t *testing.T) {
	d := NewDocument("en", "fr", []Pair{{"a\r\nb", "c\n\nd"}})
	if got := d.RowAt(0).Source; got != "a b" {
		t.Fatalf("source = %q, want %q", got, "a b")
	}
	if got := d.RowAt(0).Target; got != "c d" {
		t.Fatalf("target = %q, want %q", got, "c d")
	}

	h := NewHistory()
	if _, err := SetText(d, h, 0, Source, "x\ny\rz"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if got := d.RowAt(0).Source; got != "x y z" {
		t.Fatalf("after SetText, source = %q, want %q", got, "x y z")
	}
}

func TestRowsReturnsCopy(t *testing.T) {
	d, _ := newTestDoc(Pair{"a", "x"})
	rows := d.Rows()
	rows[0].Source = "mutated"
	if got := d.RowAt(0).Source; got != "a" {
		t.Fatalf("document changed through Rows copy: %q", got)
	}
}

func TestNewEmptyDocument(t *testing.T) {
	d := NewEmptyDocument("en", "th")
	if d.RowCount() != 0 {
		t.Fatalf("RowCount = %d, want 0", d.RowCount())
	}
	if d.Dirty() {
		t.Fatal("empty document reports dirty")
	}
	if diff := cmp.Diff([]Row{}, d.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}
