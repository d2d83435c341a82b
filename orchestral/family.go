// Package orchestral implements the Orchestral Layout component (spec.md
// §4.5): staff groups, brace/bracket geometry, cross-staff barline
// connection topology, and group labels. The table-driven category
// lookup mirrors the teacher's theory.go ScaleNames/ScaleIntervals maps
// (a closed enum keyed to a descriptive table) generalized from scale
// types to instrument families.
package orchestral

import "strings"

// Family is one of the seven instrument-family categories used for
// square-bracket grouping.
type Family int

const (
	FamilyVoices Family = iota
	FamilyKeyboards
	FamilyPercussion
	FamilyWoodwinds
	FamilyBrass
	FamilyStrings
	FamilyOther
)

// familyPrecedence is the substring-match order spec.md §4.5 prescribes:
// "voices, keyboards, percussion, woodwinds, brass, strings, other". This
// is preserved as specified even though a data-driven lookup table would
// be cleaner (spec.md §9 Open Questions) — ordering governs ambiguous
// names like "Bass", which matches voices (as in an SATB "Bass" part)
// before strings (as in "Double Bass").
var familyPrecedence = []struct {
	family     Family
	substrings []string
}{
	{FamilyVoices, []string{"voice", "soprano", "alto", "tenor", "bass", "choir", "vocal"}},
	{FamilyKeyboards, []string{"piano", "keyboard", "organ", "harpsichord", "celesta"}},
	{FamilyPercussion, []string{"drum", "percussion", "timpani", "cymbal", "marimba", "xylophone"}},
	{FamilyWoodwinds, []string{"flute", "oboe", "clarinet", "bassoon", "saxophone", "piccolo", "recorder"}},
	{FamilyBrass, []string{"trumpet", "horn", "trombone", "tuba", "cornet", "euphonium"}},
	{FamilyStrings, []string{"violin", "viola", "cello", "contrabass", "guitar", "harp", "mandolin"}},
}

// InferFamily substring-matches a part name against the precedence table
// above, returning FamilyOther if nothing matches. Matching is
// case-insensitive.
func InferFamily(partName string) Family {
	lower := strings.ToLower(partName)
	for _, entry := range familyPrecedence {
		for _, sub := range entry.substrings {
			if strings.Contains(lower, sub) {
				return entry.family
			}
		}
	}
	return FamilyOther
}

// FamilyName returns a display name for a family.
func FamilyName(f Family) string {
	switch f {
	case FamilyVoices:
		return "voices"
	case FamilyKeyboards:
		return "keyboards"
	case FamilyPercussion:
		return "percussion"
	case FamilyWoodwinds:
		return "woodwinds"
	case FamilyBrass:
		return "brass"
	case FamilyStrings:
		return "strings"
	default:
		return "other"
	}
}
