package types

// Action represents a command the widget should execute
type Action interface {
	Type() string
}

// Context provides read-only access to widget state needed for input handling
type Context interface {
	IsOpen() bool
	Query() string
	// SelectedIndex is the highlighted entry, or -1 when the cursor rests on the input
	SelectedIndex() int
	TotalEntries() int
}
