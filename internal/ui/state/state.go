package state

import (
	"typeahead/internal/domain"
)

// WidgetState contains all the widget state
type WidgetState struct {
	// Input
	Query string // current text of the input, untrimmed

	// Dropdown
	Open     bool
	Loading  bool
	Results  domain.ResultPayload // replaced wholesale, never merged
	ShowHelp bool

	// Debounce window; a tick only fires when its sequence is still current
	DebounceSeq int
	Pending     bool

	// Correlation id of the most recent search trigger; empty when nothing is outstanding
	RequestID string
}

// NewWidgetState creates the state for a freshly mounted widget
func NewWidgetState(initiallyOpen bool) *WidgetState {
	return &WidgetState{Open: initiallyOpen}
}

// ArmDebounce starts a new debounce window, invalidating any earlier one
func (s *WidgetState) ArmDebounce() int {
	s.DebounceSeq++
	s.Pending = true
	return s.DebounceSeq
}

// CancelDebounce drops any pending debounce window
func (s *WidgetState) CancelDebounce() {
	s.DebounceSeq++
	s.Pending = false
}

// TakeDebounce reports whether seq belongs to the live window and consumes it
func (s *WidgetState) TakeDebounce(seq int) bool {
	if !s.Pending || seq != s.DebounceSeq {
		return false
	}
	s.Pending = false
	return true
}

// BeginRequest records a new outstanding search and raises the loading flag
func (s *WidgetState) BeginRequest(id string) {
	s.RequestID = id
	s.Loading = true
}

// IsCurrentRequest reports whether id is the latest outstanding search
func (s *WidgetState) IsCurrentRequest(id string) bool {
	return id != "" && id == s.RequestID
}

// AbandonRequest forgets the outstanding search so late answers are dropped
func (s *WidgetState) AbandonRequest() {
	s.RequestID = ""
	s.Loading = false
}

// ReplaceResults installs p as the whole result set and ends loading
func (s *WidgetState) ReplaceResults(p domain.ResultPayload) {
	s.Results = p
	s.Loading = false
}

// ResetResults empties all three sequences
func (s *WidgetState) ResetResults() {
	s.Results = domain.ResultPayload{}
}
