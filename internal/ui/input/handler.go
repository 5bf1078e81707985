package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"typeahead/internal/ui/input/types"
)

// Handler turns key presses into widget actions
type Handler struct {
	keys KeyMap
}

func New(keys KeyMap) *Handler {
	return &Handler{keys: keys}
}

// Keys returns the bindings the handler matches against
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// HandleKey maps a key to actions. When consumed is false the key belongs
// to the text input.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, h.keys.Submit):
		if idx := ctx.SelectedIndex(); ctx.IsOpen() && idx >= 0 && idx < ctx.TotalEntries() {
			return []types.Action{types.PickAction{Index: idx}}, true
		}
		return []types.Action{types.SubmitAction{}}, true

	case key.Matches(msg, h.keys.Up):
		if !ctx.IsOpen() || ctx.TotalEntries() == 0 {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, h.keys.Down):
		if !ctx.IsOpen() || ctx.TotalEntries() == 0 {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, h.keys.Close):
		if !ctx.IsOpen() {
			return nil, true
		}
		return []types.Action{types.CloseAction{}}, true

	case key.Matches(msg, h.keys.Clear):
		return []types.Action{types.ClearAction{}}, true

	case key.Matches(msg, h.keys.Reopen):
		if ctx.IsOpen() || ctx.Query() == "" {
			return nil, true
		}
		return []types.Action{types.ReopenAction{}}, true

	case key.Matches(msg, h.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
