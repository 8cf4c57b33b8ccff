package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/BuzzLyutic/tasklist/internal/model"
)

type palette struct {
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Danger lipgloss.Color
	Badge  lipgloss.Color
	Border lipgloss.Color
}

var (
	lightPalette = palette{
		Accent: lipgloss.Color("#4F46E5"), // indigo-600
		Text:   lipgloss.Color("#111827"),
		Muted:  lipgloss.Color("#6B7280"),
		Danger: lipgloss.Color("#DC2626"),
		Badge:  lipgloss.Color("#E5E7EB"),
		Border: lipgloss.Color("#D1D5DB"),
	}
	darkPalette = palette{
		Accent: lipgloss.Color("#A78BFA"), // violet-400
		Text:   lipgloss.Color("#F9FAFB"),
		Muted:  lipgloss.Color("#9CA3AF"),
		Danger: lipgloss.Color("#F87171"),
		Badge:  lipgloss.Color("#374151"),
		Border: lipgloss.Color("#4B5563"),
	}
)

// Styles is the set of lipgloss styles for one theme.
type Styles struct {
	Title    lipgloss.Style
	Filters  lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Badge    lipgloss.Style
	Empty    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
}

func stylesFor(theme model.Theme) Styles {
	p := lightPalette
	if theme == model.ThemeDark {
		p = darkPalette
	}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			MarginBottom(1),
		Filters:  lipgloss.NewStyle().Foreground(p.Muted),
		Row:      lipgloss.NewStyle().Foreground(p.Text),
		Selected: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Badge: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Badge).
			Padding(0, 1),
		Empty:  lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Status: lipgloss.NewStyle().Foreground(p.Muted),
		Error:  lipgloss.NewStyle().Foreground(p.Danger),
		Help:   lipgloss.NewStyle().Foreground(p.Muted),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
	}
}
