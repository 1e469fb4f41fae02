package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Size     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Focused  lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Faint    lipgloss.Style
	Box      lipgloss.Style
	Panel    lipgloss.Style
	Spinner  lipgloss.Style
}

// DefaultStyles returns the palette shared by the picker and the calc panel.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:    base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Subtitle: base.Faint(true),
		Header:   base.Bold(true),
		Label:    base.Foreground(lipgloss.Color("#A3A3A3")).Width(12),
		Value:    base.Foreground(lipgloss.Color("#D1D5DB")),
		Size:     base.Bold(true).Foreground(lipgloss.Color("#22D3EE")),
		Cursor:   base.Foreground(lipgloss.Color("#D946EF")),
		Selected: base.Foreground(lipgloss.Color("#22C55E")),
		Focused:  base.Bold(true).Foreground(lipgloss.Color("#60A5FA")),
		Success:  base.Foreground(lipgloss.Color("#22C55E")),
		Error:    base.Foreground(lipgloss.Color("#EF4444")),
		Warning:  base.Foreground(lipgloss.Color("#F59E0B")),
		Faint:    base.Faint(true),
		Box:      base.Padding(0, 1),
		Panel: base.Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
		Spinner: base.Foreground(lipgloss.Color("#22D3EE")),
	}
}
