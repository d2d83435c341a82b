package score

import "score-engraver/units"

// StemDirection is up, down, double, or none.
type StemDirection int

const (
	StemNone StemDirection = iota
	StemUp
	StemDown
	StemDouble
)

// NoteheadType names the printed notehead shape; only a handful matter to
// layout (normal occupies a full notehead width, others are engraved the
// same way but are a renderer concern).
type NoteheadType int

const (
	NoteheadNormal NoteheadType = iota
	NoteheadX
	NoteheadDiamond
	NoteheadTriangle
	NoteheadSlash
	NoteheadNone
)

// BeamRole is the per-level beam connection state of a note.
type BeamRole int

const (
	BeamNone BeamRole = iota
	BeamBegin
	BeamContinue
	BeamEnd
	BeamForwardHook
	BeamBackwardHook
)

// TieRole is start, stop, both (a tie into and out of this note), or none.
type TieRole int

const (
	TieNone TieRole = iota
	TieStart
	TieStop
	TieStartStop
)

// AccidentalDisplay controls whether/which accidental glyph prints before
// the notehead.
type AccidentalDisplay int

const (
	AccidentalNone AccidentalDisplay = iota
	AccidentalSharp
	AccidentalFlat
	AccidentalNatural
	AccidentalDoubleSharp
	AccidentalDoubleFlat
	AccidentalCourtesy // parenthesized, printed even if not strictly required
)

// GraceData marks a note as a grace note (zero printed duration, optional
// slash).
type GraceData struct {
	Slashed    bool
	StealsFrom Rational // "previous" or "following" — represented as a ratio stolen from the adjacent full note, 0 if unspecified
}

// Rational is re-exported for convenience so callers need not import units
// just to build a GraceData or TupletRatio field.
type Rational = units.Rational

// Notation is a closed-set annotation attached to a note: articulations,
// slur/tie endpoints beyond the dedicated TieRole, fermatas, ornaments.
// Expressed as a tag plus optional numeric id (for matching slur starts to
// ends) rather than a class hierarchy.
type Notation struct {
	Kind        NotationKind
	Placement   Placement
	SlurID      int // pairs a slur-start with its slur-stop
	CurveControl float64 // caller-suggested curvature bias, 0 = default
}

// NotationKind enumerates the closed set of notation cases this core
// understands geometrically (others pass through as opaque text labels
// via Direction instead).
type NotationKind int

const (
	NotationArticulationAccent NotationKind = iota
	NotationArticulationStaccato
	NotationArticulationTenuto
	NotationArticulationMarcato
	NotationFermata
	NotationSlurStart
	NotationSlurStop
	NotationTupletBracketStart
	NotationTupletBracketStop
)

// Lyric is a single syllable attached to a note.
type Lyric struct {
	Text   string
	Syllabic SyllabicType
}

// SyllabicType marks whether a lyric syllable is a whole word or a
// fragment needing a hyphen/extension.
type SyllabicType int

const (
	SyllabicSingle SyllabicType = iota
	SyllabicBegin
	SyllabicMiddle
	SyllabicEnd
)

// Note carries every field named in spec.md §3: duration in divisions,
// typed base duration, dot count, voice, staff, chord-membership flag,
// grace-note data, stem direction, notehead info, beam roles per level,
// tie roles, accidental display, notations, lyrics, tuplet ratio, and
// print-object flag.
type Note struct {
	Position units.Rational // quarter notes since measure start; chord tones share the preceding non-chord note's position

	DivisionsDuration int // raw duration in <divisions> ticks, as supplied by the score source
	Base              units.BaseDuration
	Dots              int
	TupletActual      int // 0 = not a tuplet
	TupletNormal      int

	Voice int
	Staff int

	Pitch Pitch

	IsChordTone bool // true for every tone after the first in a simultaneous chord
	Grace       *GraceData

	Stem     StemDirection
	Notehead NoteheadType
	Accidental AccidentalDisplay

	// BeamRoles[level] is this note's role in the beam at that level
	// (level 0 = eighth-note beam, level 1 = sixteenth, ...).
	BeamRoles []BeamRole

	Tie TieRole

	Notations []Notation
	Lyrics    []Lyric

	PrintObject bool
}

// Pitch is a written pitch: diatonic step, chromatic alteration in
// semitones, and octave (scientific pitch notation, middle C = octave 4).
type Pitch struct {
	Step    DiatonicStep
	Alter   int
	Octave  int
}

// DiatonicStep is one of the seven natural note names.
type DiatonicStep int

const (
	StepC DiatonicStep = iota
	StepD
	StepE
	StepF
	StepG
	StepA
	StepB
)

// Duration returns the note's exact duration as a fraction of a whole
// note: base value, dotted, tupleted.
func (n Note) Duration() units.Rational {
	tuplet := units.NewRational(1, 1)
	if n.TupletActual > 0 {
		tuplet = units.TupletRatio(n.TupletActual, n.TupletNormal)
	}
	return units.NoteValue(n.Base, n.Dots, tuplet)
}

// IsGrace reports whether this note prints with zero rhythmic duration.
func (n Note) IsGrace() bool {
	return n.Grace != nil
}
