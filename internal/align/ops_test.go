package align

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitThenMergeRestoresRow(t *testing.T) {
	d, h := newTestDoc(Pair{"Hello world.", "Bonjour le monde."})

	cmd, err := Split(d, h, 0, Source, 5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	want := []Row{
		{ID: 0, Source: "Hello", Target: "Bonjour le monde."},
		{ID: 1, Source: " world.", Target: ""},
	}
	if diff := cmp.Diff(want, d.Rows()); diff != "" {
		t.Fatalf("after split (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]RowID{0, 1}, cmd.Affected); diff != "" {
		t.Fatalf("affected (-want +got):\n%s", diff)
	}

	if _, err := Merge(d, h, 0); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want = []Row{{ID: 0, Source: "Hello world.", Target: "Bonjour le monde."}}
	if diff := cmp.Diff(want, d.Rows()); diff != "" {
		t.Fatalf("after merge (-want +got):\n%s", diff)
	}
}

func TestSplitTargetColumn(t *testing.T) {
	d, h := newTestDoc(Pair{"abc", "Alpha one two"})
	if _, err := Split(d, h, 0, Target, 6); err != nil {
		t.Fatalf("Split: %v", err)
	}
	want := []Row{
		{ID: 0, Source: "abc", Target: "Alpha "},
		{ID: 1, Source: "", Target: "one two"},
	}
	if diff := cmp.Diff(want, d.Rows()); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
}

func TestSplitRuneOffsets(t *testing.T) {
	d, h := newTestDoc(Pair{"สวัสดีครับ", "hello there"})
	if _, err := Split(d, h, 0, Source, 6); err != nil {
		t.Fatalf("Split: %v", err)
	}
	if got := d.RowAt(0).Source; got != "สวัสดี" {
		t.Fatalf("upper = %q, want %q", got, "สวัสดี")
	}
	if got := d.RowAt(1).Source; got != "ครับ" {
		t.Fatalf("lower = %q, want %q", got, "ครับ")
	}
}

func TestSplitRejectsEdgeOffsets(t *testing.T) {
	for _, offset := range []int{-1, 0, 5, 6} {
		d, h := newTestDoc(Pair{"hello", "bonjour"})
		before := d.Rows()
		_, err := Split(d, h, 0, Source, offset)
		if !IsInvalidSplitPoint(err) {
			t.Fatalf("offset %d: err = %v, want invalid split point", offset, err)
		}
		if diff := cmp.Diff(before, d.Rows()); diff != "" {
			t.Fatalf("offset %d changed the document (-want +got):\n%s", offset, diff)
		}
		if h.Len() != 0 {
			t.Fatalf("offset %d recorded a command", offset)
		}
		if d.Dirty() {
			t.Fatalf("offset %d marked the document dirty", offset)
		}
	}
}

func TestSplitUnknownRow(t *testing.T) {
	d, h := newTestDoc(Pair{"hello", "bonjour"})
	if _, err := Split(d, h, 42, Source, 2); !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	if h.Len() != 0 {
		t.Fatal("failed split recorded a command")
	}
}

func TestJoinCells(t *testing.T) {
	cases := []struct {
		a, b, want string
	}{
		{"Part A", "Part B", "Part A Part B"},
		{"Hello", " world.", "Hello world."},
		{"Alpha ", "one", "Alpha one"},
		{"", "x", "x"},
		{"x", "", "x"},
		{"", "", ""},
	}
	for _, c := range cases {
		if got := joinCells(c.a, c.b); got != c.want {
			t.Fatalf("joinCells(%q, %q) = %q, want %q", c.a, c.b, got, c.want)
		}
	}
}

func TestMergeRemovesBelowAndUndoRestoresIt(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"b", "y"}, Pair{"c", "z"})
	before := d.Rows()

	cmd, err := Merge(d, h, 1)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := []Row{
		{ID: 0, Source: "a", Target: "x"},
		{ID: 1, Source: "b c", Target: "y z"},
	}
	if diff := cmp.Diff(want, d.Rows()); diff != "" {
		t.Fatalf("after merge (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]RowID{1, 2}, cmd.Affected); diff != "" {
		t.Fatalf("affected (-want +got):\n%s", diff)
	}

	if err := h.Undo(d); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if diff := cmp.Diff(before, d.Rows()); diff != "" {
		t.Fatalf("undo did not restore rows (-want +got):\n%s", diff)
	}
}

func TestMergeLastRowFails(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"b", "y"})
	before := d.Rows()
	if _, err := Merge(d, h, 1); !IsNoRowBelow(err) {
		t.Fatalf("err = %v, want no row below", err)
	}
	if diff := cmp.Diff(before, d.Rows()); diff != "" {
		t.Fatalf("failed merge changed the document (-want +got):\n%s", diff)
	}
	if h.Len() != 0 || d.Dirty() {
		t.Fatal("failed merge left traces")
	}
}

func TestMergeEmptySides(t *testing.T) {
	d, h := newTestDoc(Pair{"A", ""}, Pair{"", "B"})
	if _, err := Merge(d, h, 0); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	want := []Row{{ID: 0, Source: "A", Target: "B"}}
	if diff := cmp.Diff(want, d.Rows()); diff != "" {
		t.Fatalf("rows (-want +got):\n%s", diff)
	}
}

func TestMoveSwapsWholeRows(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"b", "y"}, Pair{"c", "z"})
	if _, err := Move(d, h, 1, Up); err != nil {
		t.Fatalf("Move up: %v", err)
	}
	want := []Row{
		{ID: 1, Source: "b", Target: "y"},
		{ID: 0, Source: "a", Target: "x"},
		{ID: 2, Source: "c", Target: "z"},
	}
	if diff := cmp.Diff(want, d.Rows()); diff != "" {
		t.Fatalf("after move (-want +got):\n%s", diff)
	}
}

func TestMoveUpThenDownIsNoop(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"b", "y"}, Pair{"c", "z"})
	before := d.Rows()
	if _, err := Move(d, h, 1, Up); err != nil {
		t.Fatalf("Move up: %v", err)
	}
	if _, err := Move(d, h, 1, Down); err != nil {
		t.Fatalf("Move down: %v", err)
	}
	if diff := cmp.Diff(before, d.Rows()); diff != "" {
		t.Fatalf("move pair changed the document (-want +got):\n%s", diff)
	}
}

func TestMoveAtBoundaryFails(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"b", "y"})
	before := d.Rows()
	if _, err := Move(d, h, 0, Up); !IsAtBoundary(err) {
		t.Fatalf("first row up: err = %v, want at boundary", err)
	}
	if _, err := Move(d, h, 1, Down); !IsAtBoundary(err) {
		t.Fatalf("last row down: err = %v, want at boundary", err)
	}
	if diff := cmp.Diff(before, d.Rows()); diff != "" {
		t.Fatalf("boundary moves changed the document (-want +got):\n%s", diff)
	}
	if h.Len() != 0 {
		t.Fatal("boundary moves recorded commands")
	}
}

func TestSetTextUndoRestoresOldText(t *testing.T) {
	d, h := newTestDoc(Pair{"old", "x"})
	if _, err := SetText(d, h, 0, Source, "new"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if got := d.RowAt(0).Source; got != "new" {
		t.Fatalf("source = %q, want %q", got, "new")
	}
	if err := h.Undo(d); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if got := d.RowAt(0).Source; got != "old" {
		t.Fatalf("after undo, source = %q, want %q", got, "old")
	}
}

func TestDeleteEmptyRow(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"", ""}, Pair{"c", "z"})
	before := d.Rows()

	if _, err := DeleteEmptyRow(d, h, 1); err != nil {
		t.Fatalf("DeleteEmptyRow: %v", err)
	}
	want := []Row{
		{ID: 0, Source: "a", Target: "x"},
		{ID: 2, Source: "c", Target: "z"},
	}
	if diff := cmp.Diff(want, d.Rows()); diff != "" {
		t.Fatalf("after delete (-want +got):\n%s", diff)
	}

	if err := h.Undo(d); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if diff := cmp.Diff(before, d.Rows()); diff != "" {
		t.Fatalf("undo did not restore the row (-want +got):\n%s", diff)
	}
}

func TestDeleteEmptyRowRejectsNonEmpty(t *testing.T) {
	d, h := newTestDoc(Pair{"a", ""}, Pair{"", "x"})
	for _, id := range []RowID{0, 1} {
		if _, err := DeleteEmptyRow(d, h, id); !IsRowNotEmpty(err) {
			t.Fatalf("row %d: err = %v, want row not empty", id, err)
		}
	}
	if h.Len() != 0 {
		t.Fatal("failed deletes recorded commands")
	}
}

func TestOperationsMarkDirty(t *testing.T) {
	ops := map[string]func(d *Document, h *History) error{
		"split": func(d *Document, h *History) error {
			_, err := Split(d, h, 0, Source, 2)
			return err
		},
		"merge": func(d *Document, h *History) error {
			_, err := Merge(d, h, 0)
			return err
		},
		"move": func(d *Document, h *History) error {
			_, err := Move(d, h, 0, Down)
			return err
		},
		"set_text": func(d *Document, h *History) error {
			_, err := SetText(d, h, 0, Target, "changed")
			return err
		},
	}
	for name, op := range ops {
		d, h := newTestDoc(Pair{"hello", "x"}, Pair{"world", "y"})
		if err := op(d, h); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !d.Dirty() {
			t.Fatalf("%s did not mark the document dirty", name)
		}
	}
}
