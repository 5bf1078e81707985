package types

// NavigateAction moves the highlighted entry
type NavigateAction struct {
	Direction string // "up", "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// SubmitAction submits the current query
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

// PickAction activates the highlighted entry
type PickAction struct {
	Index int
}

func (a PickAction) Type() string { return "pick" }

// CloseAction hides the dropdown
type CloseAction struct{}

func (a CloseAction) Type() string { return "close" }

// ClearAction empties the query and results
type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

// ReopenAction shows the dropdown again without searching
type ReopenAction struct{}

func (a ReopenAction) Type() string { return "reopen" }

// ToggleHelpAction expands or collapses the key help
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }
