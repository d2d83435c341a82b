// Package layout is the coordinator (spec.md §4): it walks parts and
// measures, estimates measure widths, breaks systems and pages, places
// staves and systems, computes orchestral grouping geometry, runs the
// collision passes, and emits the engraved tree. It is the one place that
// wires every other component together, the way the teacher's main.go
// wires parser/theory/midi/display/player together into one CLI command.
package layout

import (
	"score-engraver/breaking"
	"score-engraver/orchestral"
	"score-engraver/spacing"
	"score-engraver/vertical"
)

// PageSize is a page's physical dimensions in points.
type PageSize struct {
	Width, Height float64
}

// Margins are the page margins in points.
type Margins struct {
	Top, Left, Bottom, Right float64
}

// Context is the per-call layout context (spec.md §6): page geometry,
// staff size, and the opaque font name handed to the glyph metrics
// provider.
type Context struct {
	PageSize      PageSize
	Margins       Margins
	StaffHeight   float64
	LinesPerStaff int
	FontName      string
}

// SystemWidth returns the usable horizontal span for a system, derived
// from PageSize and Margins. Layout uses Config.SystemWidthOverride
// instead when it is positive.
func (c Context) SystemWidth() float64 {
	return c.PageSize.Width - c.Margins.Left - c.Margins.Right
}

// PageContentHeight returns the usable vertical span for systems on a
// page.
func (c Context) PageContentHeight() float64 {
	return c.PageSize.Height - c.Margins.Top - c.Margins.Bottom
}

// Config is one configuration record grouping every sub-configuration
// named in spec.md §6.
type Config struct {
	FirstPageTopOffset float64

	ClefWidth          float64
	KeySignatureWidth  float64
	TimeSignatureWidth float64

	QuarterNoteSpacing float64
	SpacingExponent    float64
	MinimumNoteSpacing float64
	MaximumNoteSpacing float64

	SystemWidthOverride float64 // 0 = derive from Context

	StretchPenalty          float64
	CompressPenalty         float64
	PreferredBreakBonus     float64
	MinimumCompressionRatio float64
	MinimumMeasuresPerSystem int
	MaximumMeasuresPerSystem int
	UseDynamicProgramming    bool

	StaffDistance         float64
	PartDistance          float64
	SystemDistance        float64
	TopSystemDistance     float64
	MinimumStaffClearance float64

	BracketOffset       float64
	FamilyBracketOffset float64
	BracketThickness    float64
	BraceThickness      float64

	CollisionPadding     float64
	AccidentalNoteheadGap float64
	BeamClearance        float64
	StemWidth            float64
}

// DefaultConfig returns reasonable defaults for every tunable, in the
// units and ranges spec.md §4.2 suggests (base spacing 30-50, exponent
// 0.6-0.7, ...).
func DefaultConfig() Config {
	return Config{
		FirstPageTopOffset: 0,

		ClefWidth:          4,
		KeySignatureWidth:  3,
		TimeSignatureWidth: 3,

		QuarterNoteSpacing: 36,
		SpacingExponent:    0.65,
		MinimumNoteSpacing: 3,
		MaximumNoteSpacing: 60,

		StretchPenalty:           10,
		CompressPenalty:          14,
		PreferredBreakBonus:      4,
		MinimumCompressionRatio:  0.8,
		MinimumMeasuresPerSystem: 1,
		MaximumMeasuresPerSystem: 12,
		UseDynamicProgramming:    true,

		StaffDistance:         8,
		PartDistance:          16,
		SystemDistance:        12,
		TopSystemDistance:     6,
		MinimumStaffClearance: 4,

		BracketOffset:       -2,
		FamilyBracketOffset: -4,
		BracketThickness:    0.4,
		BraceThickness:      1.2,

		CollisionPadding:      0.2,
		AccidentalNoteheadGap: 0.2,
		BeamClearance:         0.25,
		StemWidth:             0.12,
	}
}

func (c Config) spacingConfig() spacing.Config {
	return spacing.Config{
		QuarterNoteSpacing:      c.QuarterNoteSpacing,
		SpacingExponent:         c.SpacingExponent,
		MinimumNoteSpacing:      c.MinimumNoteSpacing,
		MaximumNoteSpacing:      c.MaximumNoteSpacing,
		ClefWidth:               c.ClefWidth,
		KeySignatureWidth:       c.KeySignatureWidth,
		TimeSignatureWidth:      c.TimeSignatureWidth,
		TrailingPad:             c.QuarterNoteSpacing / 3,
		RightBarlineWidth:       c.StemWidth * 4,
		MinimumCompressionRatio: c.MinimumCompressionRatio,
	}
}

func (c Config) breakingConfig() breaking.Config {
	return breaking.Config{
		StretchPenalty:          c.StretchPenalty,
		CompressPenalty:         c.CompressPenalty,
		PreferredBreakBonus:     c.PreferredBreakBonus,
		MinimumCompressionRatio: c.MinimumCompressionRatio,
		MinimumPerGroup:         c.MinimumMeasuresPerSystem,
		MaximumPerGroup:         c.MaximumMeasuresPerSystem,
	}
}

func (c Config) verticalConfig() vertical.Config {
	return vertical.Config{
		StaffDistance:         c.StaffDistance,
		PartDistance:          c.PartDistance,
		SystemDistance:        c.SystemDistance,
		TopSystemDistance:     c.TopSystemDistance,
		MinimumStaffClearance: c.MinimumStaffClearance,
	}
}

func (c Config) orchestralConfig() orchestral.Config {
	return orchestral.Config{
		BracketOffset:       c.BracketOffset,
		FamilyBracketOffset: c.FamilyBracketOffset,
		BracketThickness:    c.BracketThickness,
		BraceThickness:      c.BraceThickness,
	}
}
