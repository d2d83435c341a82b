package score

import (
	"fmt"

	"score-engraver/units"
)

// ValidationError is a class-1 input violation (spec.md §7): a
// precondition failure surfaced at construction time. Layout itself never
// sees these; the score's constructors reject the data before it reaches
// the pipeline.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("score: invalid %s: %s", e.Field, e.Msg)
}

// NewNoteParams is the raw field set accepted by NewNote, mirroring what
// an external score-ingestion collaborator would hand the core.
type NewNoteParams struct {
	Position     units.Rational
	Base         units.BaseDuration
	Dots         int
	TupletActual int
	TupletNormal int
	Voice        int
	Staff        int
	Pitch        Pitch
	IsChordTone  bool
	Stem         StemDirection
	Notehead     NoteheadType
	// PrintObject is a pointer so an absent value (the common case for an
	// ingestion collaborator that never mentions visibility) defaults to
	// true without being indistinguishable from an explicit false.
	PrintObject *bool
}

// NewNote validates and constructs a Note, rejecting the input violations
// named in spec.md §7: a negative dot count, or a tuplet with non-positive
// actual/normal. Duration representability is checked by confirming the
// base duration is one of the twelve known values.
func NewNote(p NewNoteParams) (*Note, error) {
	if p.Dots < 0 {
		return nil, &ValidationError{Field: "dots", Msg: "negative dot count"}
	}
	if (p.TupletActual != 0 || p.TupletNormal != 0) && (p.TupletActual <= 0 || p.TupletNormal <= 0) {
		return nil, &ValidationError{Field: "tuplet", Msg: "tuplet with non-positive actual/normal"}
	}
	if !isKnownBaseDuration(p.Base) {
		return nil, &ValidationError{Field: "base", Msg: "duration not representable"}
	}
	printObject := p.PrintObject == nil || *p.PrintObject
	notehead := p.Notehead
	if notehead == 0 && !printObject {
		notehead = NoteheadNormal
	}
	return &Note{
		Position:     p.Position,
		Base:         p.Base,
		Dots:         p.Dots,
		TupletActual: p.TupletActual,
		TupletNormal: p.TupletNormal,
		Voice:        p.Voice,
		Staff:        p.Staff,
		Pitch:        p.Pitch,
		IsChordTone:  p.IsChordTone,
		Stem:         p.Stem,
		Notehead:     notehead,
		PrintObject:  printObject,
	}, nil
}

// NewRest validates and constructs a Rest.
func NewRest(position units.Rational, base units.BaseDuration, dots int, voice, staff int) (*Rest, error) {
	if dots < 0 {
		return nil, &ValidationError{Field: "dots", Msg: "negative dot count"}
	}
	if !isKnownBaseDuration(base) {
		return nil, &ValidationError{Field: "base", Msg: "duration not representable"}
	}
	return &Rest{
		Position:    position,
		Duration:    units.NoteValue(base, dots, units.NewRational(1, 1)),
		Voice:       voice,
		Staff:       staff,
		PrintObject: true,
	}, nil
}

// NewTuplet validates a tuplet ratio in isolation, for callers assembling
// TupletActual/TupletNormal before NewNote.
func NewTuplet(actual, normal int) (int, int, error) {
	if actual <= 0 || normal <= 0 {
		return 0, 0, &ValidationError{Field: "tuplet", Msg: "tuplet with non-positive actual/normal"}
	}
	return actual, normal, nil
}

func isKnownBaseDuration(b units.BaseDuration) bool {
	return b >= units.Maxima && b <= units.TwoFiftySixth
}
