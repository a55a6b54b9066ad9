package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"         // Purple/green dark theme
	ThemeMonokai        ThemeName = "monokai"         // Classic Monokai editor colors
	ThemeNord           ThemeName = "nord"            // Nord theme - cool blue-gray
	ThemeSolarizedLight ThemeName = "solarized-light" // Solarized Light for bright terminals
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeMonokai),
		string(ThemeNord),
		string(ThemeSolarizedLight),
	}
}

// IsValidTheme checks if a theme name is built in.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (header text, prompts)
	Primary lipgloss.Color
	// Secondary accent color (the key column marker, success messages)
	Secondary lipgloss.Color
	// Warning color (changed on disk, unsaved changes)
	Warning lipgloss.Color
	// Error color (status line errors)
	Error lipgloss.Color
	// Muted color (row labels, help descriptions)
	Muted lipgloss.Color
	// Surface color (status bar background)
	Surface lipgloss.Color
	// Text color (cell text)
	Text lipgloss.Color
	// Border color (grid lines)
	Border lipgloss.Color

	// CursorBg and CursorFg color the selected cell.
	CursorBg lipgloss.Color
	CursorFg lipgloss.Color
	// Filtered colors the header of a column that has a filter.
	Filtered lipgloss.Color
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Surface:   lipgloss.Color("#1F2937"), // Dark surface
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500

		CursorBg: lipgloss.Color("#854D0E"), // Dark yellow
		CursorFg: lipgloss.Color("#FEF3C7"), // Light cream
		Filtered: lipgloss.Color("#FB923C"), // Orange
	}
}

// MonokaiPalette returns the classic Monokai editor theme palette.
func MonokaiPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#F92672"), // Monokai pink/magenta
		Secondary: lipgloss.Color("#A6E22E"), // Monokai green
		Warning:   lipgloss.Color("#E6DB74"), // Monokai yellow
		Error:     lipgloss.Color("#F92672"), // Monokai pink (same as primary)
		Muted:     lipgloss.Color("#75715E"), // Monokai comment gray
		Surface:   lipgloss.Color("#272822"), // Monokai background
		Text:      lipgloss.Color("#F8F8F2"), // Monokai foreground
		Border:    lipgloss.Color("#49483E"), // Monokai selection

		CursorBg: lipgloss.Color("#49483E"),
		CursorFg: lipgloss.Color("#E6DB74"),
		Filtered: lipgloss.Color("#FD971F"), // Orange
	}
}

// NordPalette returns the Nord theme palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"), // Nord frost (cyan)
		Secondary: lipgloss.Color("#A3BE8C"), // Nord aurora green
		Warning:   lipgloss.Color("#EBCB8B"), // Nord aurora yellow
		Error:     lipgloss.Color("#BF616A"), // Nord aurora red
		Muted:     lipgloss.Color("#4C566A"), // Nord polar night 3
		Surface:   lipgloss.Color("#2E3440"), // Nord polar night 0
		Text:      lipgloss.Color("#ECEFF4"), // Nord snow storm 2
		Border:    lipgloss.Color("#3B4252"), // Nord polar night 1

		CursorBg: lipgloss.Color("#434C5E"),
		CursorFg: lipgloss.Color("#ECEFF4"),
		Filtered: lipgloss.Color("#D08770"), // Aurora orange
	}
}

// SolarizedLightPalette returns the Solarized Light palette.
func SolarizedLightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#268BD2"), // Solarized blue
		Secondary: lipgloss.Color("#859900"), // Solarized green
		Warning:   lipgloss.Color("#B58900"), // Solarized yellow
		Error:     lipgloss.Color("#DC322F"), // Solarized red
		Muted:     lipgloss.Color("#93A1A1"), // Base1
		Surface:   lipgloss.Color("#EEE8D5"), // Base2
		Text:      lipgloss.Color("#586E75"), // Base01
		Border:    lipgloss.Color("#93A1A1"), // Base1

		CursorBg: lipgloss.Color("#EEE8D5"),
		CursorFg: lipgloss.Color("#073642"),
		Filtered: lipgloss.Color("#CB4B16"), // Orange
	}
}

// GetPalette returns the color palette for the given theme name.
// Returns the default palette for unknown theme names.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeMonokai:
		return MonokaiPalette()
	case ThemeNord:
		return NordPalette()
	case ThemeSolarizedLight:
		return SolarizedLightPalette()
	default:
		return DefaultPalette()
	}
}
