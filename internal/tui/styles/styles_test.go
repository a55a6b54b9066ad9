package styles

import (
	"path/filepath"
	"testing"
)

func TestGetPalette(t *testing.T) {
	for _, name := range BuiltinThemes() {
		if GetPalette(ThemeName(name)) == nil {
			t.Errorf("GetPalette(%q) = nil", name)
		}
	}
	if GetPalette("nope").Primary != DefaultPalette().Primary {
		t.Error("unknown theme should fall back to default")
	}
	if GetPalette(ThemeNord).Primary == DefaultPalette().Primary {
		t.Error("nord should differ from default")
	}
}

func TestIsValidTheme(t *testing.T) {
	if !IsValidTheme("monokai") {
		t.Error("monokai should be valid")
	}
	if IsValidTheme("MONOKAI") {
		t.Error("theme names are case sensitive")
	}
}

func TestNew_FilteredHeaderIsBold(t *testing.T) {
	s := New(nil)
	if s.Palette == nil {
		t.Fatal("New(nil) should use the default palette")
	}
	if !s.FilteredHeader.GetBold() {
		t.Error("filtered header must be bold")
	}
	if s.Header.GetBold() {
		t.Error("plain header must not be bold")
	}
}

func TestResolve(t *testing.T) {
	s, err := Resolve("nord", "")
	if err != nil {
		t.Fatal(err)
	}
	if s.Palette.Primary != NordPalette().Primary {
		t.Errorf("Resolve(nord) primary = %q", s.Palette.Primary)
	}

	if _, err := Resolve("nord", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Resolve() should fail when the theme file is missing")
	}
}
