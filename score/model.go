// Package score is the input data model: an ordered tree of parts,
// measures, and measure elements. It is consumed by layout, never mutated
// by it. Score ingestion from any interchange format is an external
// collaborator's job; this package only defines the in-memory shape and
// validates it at construction, the way the teacher's parser package
// validates track YAML fields at load time.
package score

import "score-engraver/units"

// Score is the root of the input tree: an ordered list of parts.
type Score struct {
	Parts []Part
}

// Part is an ordered list of measures belonging to one instrument/voice
// part. Name/Abbreviation/Family back the orchestral layout's grouping
// and label logic (spec §4.5).
type Part struct {
	Name         string
	Abbreviation string
	Family       string // optional explicit family tag; "" triggers inference
	StaffCount   int
	Measures     []Measure
}

// Measure is an ordered list of MeasureElements. Number is the printed
// measure number (not necessarily the 0-based index).
type Measure struct {
	Number   int
	Elements []MeasureElement
}

// ElementKind tags the MeasureElement variant. The set of cases is
// closed; every switch over Kind in this module is exhaustive.
type ElementKind int

const (
	ElementNote ElementKind = iota
	ElementRest
	ElementBackup
	ElementForward
	ElementDirection
	ElementAttributes
	ElementHarmony
	ElementBarline
	ElementPrintHint
	ElementSoundHint
)

// MeasureElement is a tagged variant (sum type) expressed, in the
// teacher's idiom, as one struct with a Kind discriminant and a pointer
// field per case (mirroring parser.DrumPattern's Euclidean/Pattern/Beats
// mutually-exclusive options) rather than an inheritance hierarchy.
type MeasureElement struct {
	Kind ElementKind

	Note       *Note
	Rest       *Rest
	Backup     *Backup
	Forward    *Forward
	Direction  *Direction
	Attributes *Attributes
	Harmony    *Harmony
	Barline    *Barline
	PrintHint  *PrintHint
	SoundHint  *SoundHint
}

// RhythmicPosition returns the element's position in quarter notes since
// the start of the measure, and whether the element carries one at all
// (directions/attributes/barlines share the cursor of the next rhythmic
// event and report ok=false here; layout places directions and attribute
// glyphs at the measure's first column instead).
func (e MeasureElement) RhythmicPosition() (units.Rational, bool) {
	switch e.Kind {
	case ElementNote:
		return e.Note.Position, true
	case ElementRest:
		return e.Rest.Position, true
	default:
		return units.Zero, false
	}
}

// Backup moves the time cursor backward (MusicXML-style voice handling).
type Backup struct {
	Duration units.Rational
}

// Forward advances the time cursor without sounding a note, for a given
// voice/staff.
type Forward struct {
	Duration units.Rational
	Voice    int
	Staff    int
}

// Rest is a non-sounding rhythmic event.
type Rest struct {
	Position    units.Rational // quarter notes since measure start
	Duration    units.Rational // whole-note-denominated exact value
	Voice       int
	Staff       int
	PrintObject bool
}

// ClefSign names the clef glyph family.
type ClefSign int

const (
	ClefG ClefSign = iota
	ClefF
	ClefC
	ClefPercussion
	ClefTAB
)

// Clef places a clef sign on a staff line.
type Clef struct {
	Sign Sign
	Line int
}

// Sign is an alias kept distinct from ClefSign only to avoid import-cycle
// friction between packages that want to name "sign" generically; in this
// package it is always a ClefSign.
type Sign = ClefSign

// KeySignature is signed fifths from C major/A minor (negative = flats).
type KeySignature struct {
	Fifths int
}

// TimeSignature is a displayed meter; Beats/BeatType follow the printed
// numerator/denominator (which need not reduce exactly, e.g. 4+3/8).
type TimeSignature struct {
	Beats    int
	BeatType int
}

// Transpose describes a sounding-to-written pitch transposition.
type Transpose struct {
	ChromaticSemitones int
	OctaveChange       int
}

// Attributes carries the measure-attribute group: clef/key/time/divisions/
// staves/transpose. All fields are optional; a zero Divisions means "not
// specified here" (inherit the prior value).
type Attributes struct {
	Divisions int // ticks per quarter note, 0 = unspecified
	Clef      *Clef
	Key       *KeySignature
	Time      *TimeSignature
	Staves    int // staff count for this part from here on, 0 = unspecified
	Transpose *Transpose
}

// Harmony is a chord symbol (e.g. for display above the staff); engraving
// detail is limited to a text label in this core.
type Harmony struct {
	Root    string
	Kind    string
	Bass    string
	Degrees []string
}

// BarlineLocation is left, right, or mid-measure.
type BarlineLocation int

const (
	BarlineLeft BarlineLocation = iota
	BarlineRight
	BarlineMiddle
)

// BarlineStyle names the printed barline glyph.
type BarlineStyle int

const (
	BarlineRegular BarlineStyle = iota
	BarlineDotted
	BarlineDashed
	BarlineHeavy
	BarlineLightLight
	BarlineLightHeavy
	BarlineHeavyLight
	BarlineHeavyHeavy
	BarlineTick
	BarlineShort
	BarlineNone
)

// Barline is an explicit barline override (default is a regular barline
// at the right edge of every measure).
type Barline struct {
	Location BarlineLocation
	Style    BarlineStyle
}

// PrintHint carries caller-supplied breaking guidance (§4.3 break hints)
// and page/system-start overrides.
type PrintHint struct {
	NewSystem bool
	NewPage   bool
	BreakHint BreakHintKind
}

// BreakHintKind is a caller annotation steering the breaker.
type BreakHintKind int

const (
	BreakHintNone BreakHintKind = iota
	BreakHintPreferred
	BreakHintRequired
	BreakHintForbidden
)

// SoundHint carries playback metadata the engraving core passes through
// without interpreting (tempo, dynamics level); included for completeness
// of the measure-element variant set, never read by layout.
type SoundHint struct {
	Tempo float64
}

// Direction is a non-rhythmic annotation (text, dynamics, wedge, pedal,
// segno/coda, metronome mark, ...). DirectionType is left as a string tag
// plus a text payload; full notation semantics are out of the engraving
// core's scope (it only needs a label and a placement side).
type Direction struct {
	Type    string
	Text    string
	Placement Placement
	Staff   int
}

// Placement is above or below the staff.
type Placement int

const (
	PlacementAbove Placement = iota
	PlacementBelow
)
