package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	AuthorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	DescriptionStyle = lipgloss.NewStyle()
	CoverStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Underline(true)
	PlaceholderStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	HeaderStyle      = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Text lays the view out for a terminal of the given width (0 means unwrapped).
func Text(v View, width int) string {
	if len(v.Entries) == 0 {
		return PlaceholderStyle.Render(v.Placeholder) + "\n"
	}

	wrap := func(s lipgloss.Style) lipgloss.Style {
		if width > 0 {
			return s.Width(width)
		}
		return s
	}

	var b strings.Builder
	for i, e := range v.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		if e.Title != "" {
			b.WriteString(wrap(TitleStyle).Render(e.Title) + "\n")
		}
		if e.Authors != "" {
			b.WriteString(wrap(AuthorStyle).Render(e.Authors) + "\n")
		}
		if e.Description != "" {
			b.WriteString(wrap(DescriptionStyle).Render(e.Description) + "\n")
		}
		if e.Thumbnail != "" {
			b.WriteString(CoverStyle.Render("cover: "+e.Thumbnail) + "\n")
		}
	}
	return b.String()
}
