package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the widget
type Styles struct {
	Prompt       lipgloss.Style
	Dropdown     lipgloss.Style
	SectionTitle lipgloss.Style
	Entry        lipgloss.Style
	Selected     lipgloss.Style
	Match        lipgloss.Style
	Target       lipgloss.Style
	Thumbnail    lipgloss.Style
	Loading      lipgloss.Style
	Empty        lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		SectionTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),
		Entry:     lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().PaddingLeft(2).Background(lipgloss.Color("238")),
		Match:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Target:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Thumbnail: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Loading:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:      lipgloss.NewStyle().Faint(true),
	}
}
