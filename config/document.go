// Package config loads the engine's configuration document: page
// geometry, staff size, and every tunable named in spec.md §6. It is the
// only place in this repository that reads YAML for the engine itself
// (score ingestion is a separate, external concern); the format and
// loading style mirror the teacher's parser.LoadTrack.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"score-engraver/layout"
)

// Document is the on-disk shape of an engraving configuration file.
// Every field is optional; zero values fall back to layout.DefaultConfig
// and a reasonable page default.
type Document struct {
	Page     PageDocument     `yaml:"page"`
	Staff    StaffDocument    `yaml:"staff"`
	Spacing  SpacingDocument  `yaml:"spacing,omitempty"`
	Breaking BreakingDocument `yaml:"breaking,omitempty"`
	Vertical VerticalDocument `yaml:"vertical,omitempty"`
	Grouping GroupingDocument `yaml:"grouping,omitempty"`
	Collision CollisionDocument `yaml:"collision,omitempty"`
}

// PageDocument describes page size and margins in points.
type PageDocument struct {
	WidthPoints  float64 `yaml:"width_points"`
	HeightPoints float64 `yaml:"height_points"`
	MarginTop    float64 `yaml:"margin_top"`
	MarginLeft   float64 `yaml:"margin_left"`
	MarginBottom float64 `yaml:"margin_bottom"`
	MarginRight  float64 `yaml:"margin_right"`
}

// StaffDocument describes staff size and the font name handed to the
// glyph metrics provider.
type StaffDocument struct {
	HeightPoints  float64 `yaml:"height_points"`
	LinesPerStaff int     `yaml:"lines_per_staff"`
	FontName      string  `yaml:"font_name"`
}

// SpacingDocument overrides the Horizontal Spacing Engine's tunables
// (spec.md §4.2).
type SpacingDocument struct {
	QuarterNoteSpacing float64 `yaml:"quarter_note_spacing"`
	SpacingExponent    float64 `yaml:"spacing_exponent"`
	MinimumNoteSpacing float64 `yaml:"minimum_note_spacing"`
	MaximumNoteSpacing float64 `yaml:"maximum_note_spacing"`
	ClefWidth          float64 `yaml:"clef_width"`
	KeySignatureWidth  float64 `yaml:"key_signature_width"`
	TimeSignatureWidth float64 `yaml:"time_signature_width"`
}

// BreakingDocument overrides the Breaking Engine's tunables (spec.md
// §4.3).
type BreakingDocument struct {
	SystemWidthOverride     float64 `yaml:"system_width_override"`
	StretchPenalty          float64 `yaml:"stretch_penalty"`
	CompressPenalty         float64 `yaml:"compress_penalty"`
	PreferredBreakBonus     float64 `yaml:"preferred_break_bonus"`
	MinimumCompressionRatio float64 `yaml:"minimum_compression_ratio"`
	MinimumMeasuresPerSystem int    `yaml:"minimum_measures_per_system"`
	MaximumMeasuresPerSystem int    `yaml:"maximum_measures_per_system"`
	// UseDynamicProgramming is a pointer so an explicit "false" in the
	// document can override layout.DefaultConfig's true without being
	// indistinguishable from "not set".
	UseDynamicProgramming *bool `yaml:"use_dynamic_programming"`
}

// VerticalDocument overrides the Vertical Spacing Engine's tunables
// (spec.md §4.4).
type VerticalDocument struct {
	StaffDistance         float64 `yaml:"staff_distance"`
	PartDistance          float64 `yaml:"part_distance"`
	SystemDistance        float64 `yaml:"system_distance"`
	TopSystemDistance     float64 `yaml:"top_system_distance"`
	MinimumStaffClearance float64 `yaml:"minimum_staff_clearance"`
}

// GroupingDocument overrides the Orchestral Layout's bracket/brace
// geometry (spec.md §4.5).
type GroupingDocument struct {
	BracketOffset       float64 `yaml:"bracket_offset"`
	FamilyBracketOffset float64 `yaml:"family_bracket_offset"`
	BracketThickness    float64 `yaml:"bracket_thickness"`
	BraceThickness      float64 `yaml:"brace_thickness"`
}

// CollisionDocument overrides the Collision Detector's clearance
// tunables (spec.md §4.6).
type CollisionDocument struct {
	CollisionPadding      float64 `yaml:"collision_padding"`
	AccidentalNoteheadGap float64 `yaml:"accidental_notehead_gap"`
	BeamClearance         float64 `yaml:"beam_clearance"`
	StemWidth             float64 `yaml:"stem_width"`
}

// defaultPage is Letter size at 72dpi with one-inch margins, the
// teacher's own default-filling convention (see parser.LoadTrack's
// zero-value backfill) applied to page geometry instead of track tempo.
var defaultPage = PageDocument{
	WidthPoints:  612,
	HeightPoints: 792,
	MarginTop:    72,
	MarginLeft:   72,
	MarginBottom: 72,
	MarginRight:  72,
}

var defaultStaff = StaffDocument{
	HeightPoints:  32,
	LinesPerStaff: 5,
	FontName:      "Bravura",
}

// Load reads and parses a configuration YAML file, filling every unset
// field with the engine's defaults.
func Load(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc.applyDefaults()
	return &doc, nil
}

// applyDefaults backfills zero-valued fields, mirroring
// parser.LoadTrack's post-unmarshal default pass.
func (d *Document) applyDefaults() {
	if d.Page.WidthPoints == 0 {
		d.Page.WidthPoints = defaultPage.WidthPoints
	}
	if d.Page.HeightPoints == 0 {
		d.Page.HeightPoints = defaultPage.HeightPoints
	}
	if d.Page.MarginTop == 0 {
		d.Page.MarginTop = defaultPage.MarginTop
	}
	if d.Page.MarginLeft == 0 {
		d.Page.MarginLeft = defaultPage.MarginLeft
	}
	if d.Page.MarginBottom == 0 {
		d.Page.MarginBottom = defaultPage.MarginBottom
	}
	if d.Page.MarginRight == 0 {
		d.Page.MarginRight = defaultPage.MarginRight
	}
	if d.Staff.HeightPoints == 0 {
		d.Staff.HeightPoints = defaultStaff.HeightPoints
	}
	if d.Staff.LinesPerStaff == 0 {
		d.Staff.LinesPerStaff = defaultStaff.LinesPerStaff
	}
	if d.Staff.FontName == "" {
		d.Staff.FontName = defaultStaff.FontName
	}
}

// Context converts the page/staff sections into a layout.Context.
func (d Document) Context() layout.Context {
	return layout.Context{
		PageSize:      layout.PageSize{Width: d.Page.WidthPoints, Height: d.Page.HeightPoints},
		Margins:       layout.Margins{Top: d.Page.MarginTop, Left: d.Page.MarginLeft, Bottom: d.Page.MarginBottom, Right: d.Page.MarginRight},
		StaffHeight:   d.Staff.HeightPoints,
		LinesPerStaff: d.Staff.LinesPerStaff,
		FontName:      d.Staff.FontName,
	}
}

// LayoutConfig converts every tunable section into a layout.Config,
// starting from layout.DefaultConfig and overriding only the fields the
// document actually set (a zero document value means "use the
// default").
func (d Document) LayoutConfig() layout.Config {
	cfg := layout.DefaultConfig()

	overrideFloat(&cfg.QuarterNoteSpacing, d.Spacing.QuarterNoteSpacing)
	overrideFloat(&cfg.SpacingExponent, d.Spacing.SpacingExponent)
	overrideFloat(&cfg.MinimumNoteSpacing, d.Spacing.MinimumNoteSpacing)
	overrideFloat(&cfg.MaximumNoteSpacing, d.Spacing.MaximumNoteSpacing)
	overrideFloat(&cfg.ClefWidth, d.Spacing.ClefWidth)
	overrideFloat(&cfg.KeySignatureWidth, d.Spacing.KeySignatureWidth)
	overrideFloat(&cfg.TimeSignatureWidth, d.Spacing.TimeSignatureWidth)

	overrideFloat(&cfg.SystemWidthOverride, d.Breaking.SystemWidthOverride)
	overrideFloat(&cfg.StretchPenalty, d.Breaking.StretchPenalty)
	overrideFloat(&cfg.CompressPenalty, d.Breaking.CompressPenalty)
	overrideFloat(&cfg.PreferredBreakBonus, d.Breaking.PreferredBreakBonus)
	overrideFloat(&cfg.MinimumCompressionRatio, d.Breaking.MinimumCompressionRatio)
	overrideInt(&cfg.MinimumMeasuresPerSystem, d.Breaking.MinimumMeasuresPerSystem)
	overrideInt(&cfg.MaximumMeasuresPerSystem, d.Breaking.MaximumMeasuresPerSystem)
	if d.Breaking.UseDynamicProgramming != nil {
		cfg.UseDynamicProgramming = *d.Breaking.UseDynamicProgramming
	}

	overrideFloat(&cfg.StaffDistance, d.Vertical.StaffDistance)
	overrideFloat(&cfg.PartDistance, d.Vertical.PartDistance)
	overrideFloat(&cfg.SystemDistance, d.Vertical.SystemDistance)
	overrideFloat(&cfg.TopSystemDistance, d.Vertical.TopSystemDistance)
	overrideFloat(&cfg.MinimumStaffClearance, d.Vertical.MinimumStaffClearance)

	overrideFloat(&cfg.BracketOffset, d.Grouping.BracketOffset)
	overrideFloat(&cfg.FamilyBracketOffset, d.Grouping.FamilyBracketOffset)
	overrideFloat(&cfg.BracketThickness, d.Grouping.BracketThickness)
	overrideFloat(&cfg.BraceThickness, d.Grouping.BraceThickness)

	overrideFloat(&cfg.CollisionPadding, d.Collision.CollisionPadding)
	overrideFloat(&cfg.AccidentalNoteheadGap, d.Collision.AccidentalNoteheadGap)
	overrideFloat(&cfg.BeamClearance, d.Collision.BeamClearance)
	overrideFloat(&cfg.StemWidth, d.Collision.StemWidth)

	return cfg
}

func overrideFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func overrideInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
