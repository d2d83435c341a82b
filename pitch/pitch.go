// Package pitch converts written pitches (diatonic step + alteration +
// octave) to chromatic MIDI-style numbers and staff-line positions. No
// third-party pitch-math library exists anywhere in the pack, so this
// follows the teacher's own approach in theory.go: a small table plus
// arithmetic, no external dependency.
package pitch

import "score-engraver/score"

// diatonicSemitones gives each natural step's semitone offset from C.
var diatonicSemitones = map[score.DiatonicStep]int{
	score.StepC: 0,
	score.StepD: 2,
	score.StepE: 4,
	score.StepF: 5,
	score.StepG: 7,
	score.StepA: 9,
	score.StepB: 11,
}

// diatonicIndex gives each natural step's 0-6 position for line/space math.
var diatonicIndex = map[score.DiatonicStep]int{
	score.StepC: 0,
	score.StepD: 1,
	score.StepE: 2,
	score.StepF: 3,
	score.StepG: 4,
	score.StepA: 5,
	score.StepB: 6,
}

// MIDINumber converts a written pitch to a standard 0-127 MIDI note
// number (middle C = 60), clamped to the valid range.
func MIDINumber(p score.Pitch) int {
	n := 12*(p.Octave+1) + diatonicSemitones[p.Step] + p.Alter
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	return n
}

// DiatonicNumber returns a linear, alteration-independent step count
// (octave*7 + step index) suitable for sorting pitches by staff position
// without regard to accidental.
func DiatonicNumber(p score.Pitch) int {
	return p.Octave*7 + diatonicIndex[p.Step]
}

// StaffPosition returns a pitch's vertical position in half-staff-spaces
// below or above the staff's center line, given the diatonic number of
// the pitch on the staff's center line (the clef's defining offset; see
// StaffCenterOffset).
//
// Each diatonic step is half a staff space (a line-to-adjacent-space
// distance); StaffPosition is therefore directly usable as a y-offset in
// staff spaces once multiplied by 0.5.
func StaffPosition(p Pitch, centerDiatonic int) int {
	return DiatonicNumber(p.Pitch) - centerDiatonic
}

// Pitch pairs a score.Pitch with nothing else; it exists only so
// StaffPosition's signature reads naturally at call sites that already
// have a score.Pitch in hand (callers may use score.Pitch directly via
// DiatonicNumber instead).
type Pitch struct {
	score.Pitch
}

// StaffCenterOffset returns the diatonic number of the pitch that sits on
// the staff's center line for a given clef, e.g. treble clef (G on line 2)
// centers on B4.
func StaffCenterOffset(clef score.ClefSign) int {
	switch clef {
	case score.ClefG:
		return DiatonicNumber(score.Pitch{Step: score.StepB, Octave: 4})
	case score.ClefF:
		return DiatonicNumber(score.Pitch{Step: score.StepD, Octave: 3})
	case score.ClefC:
		return DiatonicNumber(score.Pitch{Step: score.StepC, Octave: 4})
	default:
		return DiatonicNumber(score.Pitch{Step: score.StepB, Octave: 4})
	}
}
