// Package styles holds the lipgloss styles of the grid editor and the
// palettes they are built from.
package styles

import "github.com/charmbracelet/lipgloss"

// Styles is the full set of styles used to draw the editor.
type Styles struct {
	Palette *ColorPalette

	Title          lipgloss.Style
	Header         lipgloss.Style
	FilteredHeader lipgloss.Style
	KeyHeader      lipgloss.Style
	Label          lipgloss.Style
	RowLabel       lipgloss.Style
	Cell           lipgloss.Style
	Cursor         lipgloss.Style
	Border         lipgloss.Style

	StatusBar lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style

	Prompt       lipgloss.Style
	Menu         lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style

	HelpBox  lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// New builds styles from a palette. A nil palette uses DefaultPalette.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Header: lipgloss.NewStyle().
			Foreground(p.Primary).
			Padding(0, 1),
		// Bold marks a column that currently carries a filter.
		FilteredHeader: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(p.Filtered).
			Padding(0, 1),
		KeyHeader: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Label: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.Muted).
			Padding(0, 1),
		RowLabel: lipgloss.NewStyle().
			Foreground(p.Muted).
			Align(lipgloss.Right).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Background(p.CursorBg).
			Foreground(p.CursorFg).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Foreground(p.Border),

		StatusBar: lipgloss.NewStyle().
			Background(p.Surface).
			Foreground(p.Text).
			Padding(0, 1),
		Info: lipgloss.NewStyle().
			Foreground(p.Secondary),
		Warning: lipgloss.NewStyle().
			Foreground(p.Warning),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error),
		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		MenuItem: lipgloss.NewStyle().
			Foreground(p.Text),
		MenuSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.CursorFg).
			Background(p.CursorBg),

		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),
		HelpDesc: lipgloss.NewStyle().
			Foreground(p.Muted),
	}
}

// Resolve picks the palette for a configured theme. A theme file, when
// given, wins over the built-in name.
func Resolve(name, themeFile string) (*Styles, error) {
	if themeFile != "" {
		tf, err := LoadThemeFile(themeFile)
		if err != nil {
			return nil, err
		}
		return New(tf.ToPalette()), nil
	}
	return New(GetPalette(ThemeName(name))), nil
}
