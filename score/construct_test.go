package score

import (
	"testing"

	"score-engraver/units"
)

func TestNewNoteRejectsNegativeDots(t *testing.T) {
	_, err := NewNote(NewNoteParams{Base: units.Quarter, Dots: -1})
	if err == nil {
		t.Fatal("expected error for negative dot count")
	}
}

func TestNewNoteRejectsBadTuplet(t *testing.T) {
	_, err := NewNote(NewNoteParams{Base: units.Quarter, TupletActual: 3, TupletNormal: 0})
	if err == nil {
		t.Fatal("expected error for non-positive tuplet normal")
	}
}

func TestNewNoteAccepts(t *testing.T) {
	n, err := NewNote(NewNoteParams{Base: units.Quarter, Voice: 1, Staff: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !n.PrintObject {
		t.Fatal("expected PrintObject to default true")
	}
}

func TestNewNoteHonorsExplicitPrintObjectFalse(t *testing.T) {
	hidden := false
	n, err := NewNote(NewNoteParams{Base: units.Quarter, Voice: 1, Staff: 1, PrintObject: &hidden})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.PrintObject {
		t.Fatal("expected an explicit PrintObject: false to be honored, not overridden to true")
	}
}

func TestNewRestRejectsUnknownBase(t *testing.T) {
	_, err := NewRest(units.Zero, units.BaseDuration(999), 0, 1, 1)
	if err == nil {
		t.Fatal("expected error for unrepresentable duration")
	}
}

func TestNoteDurationDotted(t *testing.T) {
	n, err := NewNote(NewNoteParams{Base: units.Quarter, Dots: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := units.NewRational(3, 8) // dotted quarter = 3/8 of a whole note
	if !n.Duration().Equal(want) {
		t.Fatalf("Duration() = %v, want %v", n.Duration(), want)
	}
}
