package ui

import (
	"typeahead/internal/domain"
)

// EventMsg carries a widget notification to the host model
type EventMsg struct {
	WidgetID int
	Event    domain.Notification
}

// ResultsMsg hands results to a widget through the program loop. An empty
// RequestID is an uncorrelated direct assignment; otherwise the payload only
// applies while RequestID is the widget's latest request. WidgetID zero
// addresses every widget.
type ResultsMsg struct {
	WidgetID  int
	RequestID string
	Payload   domain.ResultPayload
}

// debounceMsg fires when a debounce window elapses
type debounceMsg struct {
	widgetID int
	seq      int
}

// fetchResultMsg contains the outcome of a self-fetch
type fetchResultMsg struct {
	widgetID  int
	requestID string
	query     string
	payload   domain.ResultPayload
	err       error
}

// deliveryMsg carries a side-channel envelope into the update loop
type deliveryMsg struct {
	widgetID int
	event    domain.ResultsDeliveredEvent
}
