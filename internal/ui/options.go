package ui

import (
	"time"

	"github.com/google/uuid"

	"typeahead/internal/config"
	"typeahead/internal/eventbus"
	"typeahead/internal/fetch"
	"typeahead/internal/ui/input"
)

// Strategy is how a widget obtains results once the debounce window elapses
type Strategy int

const (
	// StrategyDelegated emits SearchRequested and waits for the host to answer
	StrategyDelegated Strategy = iota
	// StrategySelfFetch queries an endpoint or injected fetcher directly
	StrategySelfFetch
)

func (s Strategy) String() string {
	if s == StrategySelfFetch {
		return "self-fetch"
	}
	return "delegated"
}

// Options configures a widget
type Options struct {
	Placeholder    string
	Endpoint       string        // selects self-fetch over HTTP when set
	Fetcher        fetch.Fetcher // selects self-fetch with a custom source; wins over Endpoint
	Debounce       time.Duration // <= 0 triggers on the keystroke itself
	InitiallyOpen  bool
	Channel        string // side-channel name; empty disables side-channel delivery
	RequestTimeout time.Duration
	MaxLabelWidth  int

	// Bus receives every notification and carries side-channel deliveries
	Bus eventbus.EventBus

	Keys         input.KeyMap
	NewRequestID func() string
}

// DefaultOptions returns options matching the default configuration
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig().Widget)
}

// OptionsFromConfig builds widget options from the [widget] config section
func OptionsFromConfig(w config.WidgetSettings) Options {
	return Options{
		Placeholder:    w.Placeholder,
		Endpoint:       w.Endpoint,
		Debounce:       w.Debounce(),
		InitiallyOpen:  w.InitiallyOpen,
		Channel:        w.Channel,
		RequestTimeout: w.RequestTimeout(),
		MaxLabelWidth:  w.MaxLabelWidth,
		Keys:           input.DefaultKeyMap(),
		NewRequestID:   uuid.NewString,
	}
}

func (o Options) withDefaults() Options {
	if o.NewRequestID == nil {
		o.NewRequestID = uuid.NewString
	}
	if len(o.Keys.Submit.Keys()) == 0 {
		o.Keys = input.DefaultKeyMap()
	}
	return o
}

func (o Options) fetcher() fetch.Fetcher {
	if o.Fetcher != nil {
		return o.Fetcher
	}
	if o.Endpoint != "" {
		return fetch.NewClient(o.Endpoint, o.RequestTimeout)
	}
	return nil
}
