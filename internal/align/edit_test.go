package align

import "testing"

func TestBeginEditUnknownRow(t *testing.T) {
	d, _ := newTestDoc(Pair{"a", "x"})
	if _, err := BeginEdit(d, 7, Source); !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestEditSessionCommit(t *testing.T) {
	d, h := newTestDoc(Pair{"old", "x"})
	s, err := BeginEdit(d, 0, Source)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if s.Original() != "old" {
		t.Fatalf("Original = %q, want %q", s.Original(), "old")
	}

	cmd, err := s.Commit(d, h, "new")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if cmd == nil {
		t.Fatal("Commit returned no command")
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

func TestEditSessionIsSingleUse(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"})
	s, err := BeginEdit(d, 0, Source)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := s.Commit(d, h, "b"); err != nil {
		t.Fatalf("first Commit: %v", err)
	}
	if _, err := s.Commit(d, h, "c"); !IsSessionUsed(err) {
		t.Fatalf("second Commit = %v, want session used", err)
	}
}

func TestEditSessionConflict(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"})
	s, err := BeginEdit(d, 0, Source)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := SetText(d, h, 0, Source, "changed underneath"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if _, err := s.Commit(d, h, "mine"); !IsEditConflict(err) {
		t.Fatalf("Commit = %v, want edit conflict", err)
	}
	if got := d.RowAt(0).Source; got != "changed underneath" {
		t.Fatalf("conflicting commit touched the cell: %q", got)
	}
	if h.Len() != 1 {
		t.Fatalf("history length = %d, want 1", h.Len())
	}
}

func TestEditSessionGoneRow(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"}, Pair{"b", "y"})
	s, err := BeginEdit(d, 1, Source)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := Merge(d, h, 0); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if _, err := s.Commit(d, h, "text"); !IsNotFound(err) {
		t.Fatalf("Commit = %v, want not found", err)
	}
}

func TestEditSessionUnchangedTextIsNoop(t *testing.T) {
	d, h := newTestDoc(Pair{"same", "x"})
	s, err := BeginEdit(d, 0, Source)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	cmd, err := s.Commit(d, h, "same")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if cmd != nil {
		t.Fatal("no-op commit produced a command")
	}
	if h.Len() != 0 || d.Dirty() {
		t.Fatal("no-op commit left traces")
	}
}

func TestEditSessionCancel(t *testing.T) {
	d, h := newTestDoc(Pair{"a", "x"})
	s, err := BeginEdit(d, 0, Source)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	s.Cancel()
	if _, err := s.Commit(d, h, "b"); !IsSessionUsed(err) {
		t.Fatalf("Commit after Cancel = %v, want session used", err)
	}
}

func TestEditSessionTokensDiffer(t *testing.T) {
	d, _ := newTestDoc(Pair{"a", "x"})
	s1, err := BeginEdit(d, 0, Source)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	s2, err := BeginEdit(d, 0, Target)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if s1.Token == s2.Token {
		t.Fatal("sessions share a token")
	}
}
