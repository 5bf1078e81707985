package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventInputChanged     EventType = "InputChanged"
	EventSubmitted        EventType = "Submitted"
	EventCleared          EventType = "Cleared"
	EventClosed           EventType = "Closed"
	EventPicked           EventType = "Picked"
	EventSearchRequested  EventType = "SearchRequested"
	EventResultsDelivered EventType = "ResultsDelivered"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DefaultResultsChannel is the side-channel name widgets listen on unless configured otherwise
const DefaultResultsChannel = "search-results"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// Notification is an event the widget emits towards its host
type Notification interface {
	DomainEvent
	Name() string
}

// InputChangedEvent is emitted on every keystroke with the raw input value
type InputChangedEvent struct {
	Query string `json:"query"`
}

func (e InputChangedEvent) Type() EventType { return EventInputChanged }
func (e InputChangedEvent) Name() string    { return "input-changed" }

// SubmittedEvent is emitted when the user submits the raw query
type SubmittedEvent struct {
	Query string `json:"query"`
}

func (e SubmittedEvent) Type() EventType { return EventSubmitted }
func (e SubmittedEvent) Name() string    { return "submitted" }

// ClearedEvent is emitted when the widget is cleared
type ClearedEvent struct{}

func (e ClearedEvent) Type() EventType { return EventCleared }
func (e ClearedEvent) Name() string    { return "cleared" }

// ClosedEvent is emitted when the dropdown is explicitly closed
type ClosedEvent struct{}

func (e ClosedEvent) Type() EventType { return EventClosed }
func (e ClosedEvent) Name() string    { return "closed" }

// PickedEvent is emitted when a result entry is chosen
type PickedEvent struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Target   string   `json:"target,omitempty"`
}

func (e PickedEvent) Type() EventType { return EventPicked }
func (e PickedEvent) Name() string    { return "picked" }

// SearchRequestedEvent asks the host to run a search (delegated strategy)
type SearchRequestedEvent struct {
	Query     string `json:"query"`
	RequestID string `json:"request_id"`
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }
func (e SearchRequestedEvent) Name() string    { return "search-requested" }

// ResultsDeliveredEvent is the side-channel envelope. Results are nested under
// Detail["data"]; RequestID is optional and, when set, must match the widget's
// latest request.
type ResultsDeliveredEvent struct {
	Channel   string                 `json:"channel"`
	RequestID string                 `json:"request_id,omitempty"`
	Detail    map[string]interface{} `json:"detail"`
}

func (e ResultsDeliveredEvent) Type() EventType { return EventResultsDelivered }

// Payload extracts the nested result data. Only suggestions and products are
// forwarded on this path; pages are not read from the envelope.
func (e ResultsDeliveredEvent) Payload() ResultPayload {
	data, _ := e.Detail["data"].(map[string]interface{})
	if data == nil {
		return ResultPayload{}
	}
	return ResultPayload{
		Suggestions: NormalizeItems(data["suggestions"]),
		Products:    NormalizeItems(data["products"]),
	}
}

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
