package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "engrave.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTemp(t, "page:\n  width_points: 595\n")
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Page.WidthPoints != 595 {
		t.Fatalf("WidthPoints = %v, want 595", doc.Page.WidthPoints)
	}
	if doc.Page.HeightPoints != defaultPage.HeightPoints {
		t.Fatalf("HeightPoints = %v, want default %v", doc.Page.HeightPoints, defaultPage.HeightPoints)
	}
	if doc.Staff.FontName != defaultStaff.FontName {
		t.Fatalf("FontName = %q, want default %q", doc.Staff.FontName, defaultStaff.FontName)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestContextAndLayoutConfig(t *testing.T) {
	path := writeTemp(t, `
page:
  width_points: 500
  height_points: 700
staff:
  height_points: 40
spacing:
  quarter_note_spacing: 50
breaking:
  use_dynamic_programming: false
`)
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx := doc.Context()
	if ctx.PageSize.Width != 500 || ctx.PageSize.Height != 700 {
		t.Fatalf("unexpected page size: %+v", ctx.PageSize)
	}
	if ctx.StaffHeight != 40 {
		t.Fatalf("StaffHeight = %v, want 40", ctx.StaffHeight)
	}

	cfg := doc.LayoutConfig()
	if cfg.QuarterNoteSpacing != 50 {
		t.Fatalf("QuarterNoteSpacing = %v, want 50", cfg.QuarterNoteSpacing)
	}
	if cfg.SpacingExponent == 0 {
		t.Fatalf("SpacingExponent should keep its default, got 0")
	}
	if cfg.UseDynamicProgramming {
		t.Fatalf("expected use_dynamic_programming: false to override the default")
	}
}
