package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"typeahead/internal/ui/input/types"
)

type fakeContext struct {
	open     bool
	query    string
	selected int
	total    int
}

func (c fakeContext) IsOpen() bool       { return c.open }
func (c fakeContext) Query() string      { return c.query }
func (c fakeContext) SelectedIndex() int { return c.selected }
func (c fakeContext) TotalEntries() int  { return c.total }

func TestHandleKey(t *testing.T) {
	h := New(DefaultKeyMap())

	tests := []struct {
		name         string
		msg          tea.KeyMsg
		ctx          fakeContext
		wantActions  []types.Action
		wantConsumed bool
	}{
		{
			name:         "enter submits from the input row",
			msg:          tea.KeyMsg{Type: tea.KeyEnter},
			ctx:          fakeContext{open: true, selected: -1, total: 2},
			wantActions:  []types.Action{types.SubmitAction{}},
			wantConsumed: true,
		},
		{
			name:         "enter picks the highlighted entry",
			msg:          tea.KeyMsg{Type: tea.KeyEnter},
			ctx:          fakeContext{open: true, selected: 1, total: 2},
			wantActions:  []types.Action{types.PickAction{Index: 1}},
			wantConsumed: true,
		},
		{
			name:         "enter submits when closed even with a stale cursor",
			msg:          tea.KeyMsg{Type: tea.KeyEnter},
			ctx:          fakeContext{open: false, selected: 1, total: 2},
			wantActions:  []types.Action{types.SubmitAction{}},
			wantConsumed: true,
		},
		{
			name:         "down navigates when open",
			msg:          tea.KeyMsg{Type: tea.KeyDown},
			ctx:          fakeContext{open: true, selected: -1, total: 2},
			wantActions:  []types.Action{types.NavigateAction{Direction: "down"}},
			wantConsumed: true,
		},
		{
			name:         "ctrl+p navigates up",
			msg:          tea.KeyMsg{Type: tea.KeyCtrlP},
			ctx:          fakeContext{open: true, selected: 0, total: 2},
			wantActions:  []types.Action{types.NavigateAction{Direction: "up"}},
			wantConsumed: true,
		},
		{
			name:         "down without entries is swallowed",
			msg:          tea.KeyMsg{Type: tea.KeyDown},
			ctx:          fakeContext{open: true, selected: -1},
			wantConsumed: true,
		},
		{
			name:         "esc closes an open dropdown",
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			ctx:          fakeContext{open: true},
			wantActions:  []types.Action{types.CloseAction{}},
			wantConsumed: true,
		},
		{
			name:         "esc on a closed dropdown does nothing",
			msg:          tea.KeyMsg{Type: tea.KeyEsc},
			ctx:          fakeContext{},
			wantConsumed: true,
		},
		{
			name:         "ctrl+u clears",
			msg:          tea.KeyMsg{Type: tea.KeyCtrlU},
			ctx:          fakeContext{query: "towel"},
			wantActions:  []types.Action{types.ClearAction{}},
			wantConsumed: true,
		},
		{
			name:         "ctrl+o reopens with a query",
			msg:          tea.KeyMsg{Type: tea.KeyCtrlO},
			ctx:          fakeContext{query: "towel"},
			wantActions:  []types.Action{types.ReopenAction{}},
			wantConsumed: true,
		},
		{
			name:         "ctrl+o without a query does nothing",
			msg:          tea.KeyMsg{Type: tea.KeyCtrlO},
			ctx:          fakeContext{},
			wantConsumed: true,
		},
		{
			name: "printable runes belong to the text input",
			msg:  tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")},
			ctx:  fakeContext{open: true},
		},
		{
			name: "backspace belongs to the text input",
			msg:  tea.KeyMsg{Type: tea.KeyBackspace},
			ctx:  fakeContext{open: true, query: "ab"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, consumed := h.HandleKey(tt.msg, tt.ctx)
			assert.Equal(t, tt.wantConsumed, consumed)
			assert.Equal(t, tt.wantActions, actions)
		})
	}
}
