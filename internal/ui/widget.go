package ui

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
	"typeahead/internal/fetch"
	"typeahead/internal/logging"
	"typeahead/internal/ui/input"
	"typeahead/internal/ui/logic"
	"typeahead/internal/ui/state"
	"typeahead/internal/ui/views"
)

// deliveryBuffer bounds side-channel envelopes waiting for the update loop
const deliveryBuffer = 16

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Widget is a debounced search input with a results dropdown. It is a
// tea.Model; hosts embed it and forward messages to Update.
type Widget struct {
	id    int
	ctx   context.Context
	log   *zerolog.Logger
	opts  Options
	state *state.WidgetState

	textInput    textinput.Model
	spinner      spinner.Model
	help         help.Model
	inputHandler *input.Handler
	navigator    *logic.Navigator
	renderer     *views.Renderer
	fetcher      fetch.Fetcher
	width        int

	// side-channel
	deliveries  chan domain.ResultsDeliveredEvent
	done        chan struct{}
	unsubscribe func()
	closeOnce   sync.Once
}

// New creates a widget. When opts.Bus is set and a channel is configured the
// widget listens for ResultsDelivered envelopes on that channel until
// Shutdown is called.
func New(ctx context.Context, opts Options) *Widget {
	opts = opts.withDefaults()
	ctx = logging.WithComponent(ctx, "widget")

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "🔍 "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	w := &Widget{
		id:           nextID(),
		ctx:          ctx,
		log:          logging.FromContext(ctx),
		opts:         opts,
		state:        state.NewWidgetState(opts.InitiallyOpen),
		textInput:    ti,
		spinner:      sp,
		help:         help.New(),
		inputHandler: input.New(opts.Keys),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		fetcher:      opts.fetcher(),
		deliveries:   make(chan domain.ResultsDeliveredEvent, deliveryBuffer),
		done:         make(chan struct{}),
	}

	if opts.Bus != nil && opts.Channel != "" {
		w.unsubscribe = opts.Bus.Subscribe(eventbus.EventResultsDelivered, w.onDelivered)
	}

	mounted := w.log.Debug().
		Int("widget", w.id).
		Str("strategy", w.Strategy().String()).
		Str("channel", opts.Channel).
		Dur("debounce", opts.Debounce)
	if c, ok := w.fetcher.(*fetch.Client); ok {
		mounted = mounted.Str("endpoint", c.Endpoint())
	}
	mounted.Msg("widget mounted")
	return w
}

// ID identifies the widget in messages it produces
func (w *Widget) ID() int {
	return w.id
}

// Strategy reports how the widget obtains results
func (w *Widget) Strategy() Strategy {
	if w.fetcher != nil {
		return StrategySelfFetch
	}
	return StrategyDelegated
}

// Init implements tea.Model
func (w *Widget) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, w.waitForDelivery())
}

// Update implements tea.Model
func (w *Widget) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.textInput.Width = max(msg.Width-4, 0)
		return w, nil

	case tea.KeyMsg:
		return w, w.handleKey(msg)

	case debounceMsg:
		if msg.widgetID != w.id || !w.state.TakeDebounce(msg.seq) {
			return w, nil
		}
		return w, w.trigger()

	case fetchResultMsg:
		if msg.widgetID != w.id {
			return w, nil
		}
		return w, w.handleFetchResult(msg)

	case deliveryMsg:
		if msg.widgetID != w.id {
			return w, nil
		}
		w.applyDelivery(msg.event)
		return w, w.waitForDelivery()

	case ResultsMsg:
		if msg.WidgetID != 0 && msg.WidgetID != w.id {
			return w, nil
		}
		if msg.RequestID == "" {
			w.SetResults(msg.Payload)
		} else {
			w.SetResultsFor(msg.RequestID, msg.Payload)
		}
		return w, nil

	case spinner.TickMsg:
		if !w.state.Loading {
			return w, nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd
	}

	var cmd tea.Cmd
	w.textInput, cmd = w.textInput.Update(msg)
	return w, cmd
}

// View implements tea.Model
func (w *Widget) View() string {
	return w.renderer.Render(views.ViewState{
		Width:         w.width,
		Input:         w.textInput.View(),
		Sections:      w.Sections(),
		SelectedIndex: w.navigator.Selected(),
		Spinner:       w.spinner.View(),
		ShowHelp:      w.state.ShowHelp,
		HelpModel:     w.help,
		Keys:          w.opts.Keys,
		MaxLabelWidth: w.opts.MaxLabelWidth,
	})
}

// HTML renders the current dropdown as an HTML fragment
func (w *Widget) HTML() string {
	return views.RenderHTML(views.Dropdown{
		Placeholder:   w.opts.Placeholder,
		Query:         w.state.Query,
		Channel:       w.opts.Channel,
		Sections:      w.Sections(),
		SelectedIndex: w.navigator.Selected(),
	})
}

// Sections returns what the dropdown currently shows
func (w *Widget) Sections() []logic.Section {
	return logic.Select(logic.RenderInput{
		Query:   w.state.Query,
		Results: w.state.Results,
		Loading: w.state.Loading,
		Open:    w.state.Open,
	})
}

// Query returns the current raw input text
func (w *Widget) Query() string { return w.state.Query }

// IsOpen reports whether the dropdown is visible
func (w *Widget) IsOpen() bool { return w.state.Open }

// IsLoading reports whether a search is outstanding
func (w *Widget) IsLoading() bool { return w.state.Loading }

// Results returns the current result set
func (w *Widget) Results() domain.ResultPayload { return w.state.Results }

// RequestID returns the correlation id of the latest search, if one is outstanding
func (w *Widget) RequestID() string { return w.state.RequestID }

// SelectedIndex returns the highlighted entry or logic.NoSelection
func (w *Widget) SelectedIndex() int { return w.navigator.Selected() }

// TotalEntries returns the number of selectable entries on screen
func (w *Widget) TotalEntries() int { return len(logic.Flatten(w.Sections())) }

// Focus gives the widget keyboard input
func (w *Widget) Focus() tea.Cmd {
	return w.textInput.Focus()
}

// Blur stops the widget from reacting to keys
func (w *Widget) Blur() {
	w.textInput.Blur()
}

// Focused reports whether the widget takes keyboard input
func (w *Widget) Focused() bool {
	return w.textInput.Focused()
}

// Shutdown detaches the widget from the side-channel. Later deliveries are ignored.
func (w *Widget) Shutdown() {
	w.closeOnce.Do(func() {
		if w.unsubscribe != nil {
			w.unsubscribe()
		}
		close(w.done)
	})
}
