package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"typeahead/internal/ui/logic"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Input         string // rendered text input line
	Sections      []logic.Section
	SelectedIndex int // position in the flattened entries, or logic.NoSelection
	Spinner       string
	ShowHelp      bool
	HelpModel     help.Model
	Keys          help.KeyMap
	MaxLabelWidth int
}

// Renderer handles all terminal rendering of the widget
type Renderer struct {
	styles  *Styles
	section *SectionRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:  styles,
		section: NewSectionRenderer(styles),
	}
}

// Render produces the input line followed by the dropdown, when it has anything to show
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}
	content.WriteString(state.Input)

	if body := r.renderDropdown(state); body != "" {
		content.WriteString("\n")
		dropdown := r.styles.Dropdown
		if state.Width > 4 {
			dropdown = dropdown.Width(state.Width - 2)
		}
		content.WriteString(dropdown.Render(body))
	}

	if state.Keys != nil {
		hm := state.HelpModel
		hm.ShowAll = state.ShowHelp
		if state.Width > 0 {
			hm.Width = state.Width
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(hm.View(state.Keys)))
	}
	return content.String()
}

func (r *Renderer) renderDropdown(state ViewState) string {
	var blocks []string
	offset := 0
	for _, s := range state.Sections {
		switch s.Kind {
		case logic.SectionLoading:
			blocks = append(blocks, r.styles.Loading.Render(state.Spinner+" Searching…"))
		case logic.SectionEmpty:
			blocks = append(blocks, r.section.RenderEmpty(s.Query))
		default:
			blocks = append(blocks, r.section.Render(s, offset, state.SelectedIndex, state.MaxLabelWidth))
			offset += len(s.Entries)
		}
	}
	return strings.Join(blocks, "\n")
}
