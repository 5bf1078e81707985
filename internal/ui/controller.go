package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/serr"

	"typeahead/internal/domain"
	inputtypes "typeahead/internal/ui/input/types"
	"typeahead/internal/ui/logic"
)

// Type replaces the input text as if the user had typed it
func (w *Widget) Type(value string) tea.Cmd {
	w.textInput.SetValue(value)
	w.textInput.CursorEnd()
	return w.onInput(value)
}

// Clear empties the query and results, closes the dropdown, refocuses the
// input and emits Cleared
func (w *Widget) Clear() tea.Cmd {
	w.textInput.Reset()
	w.state.Query = ""
	w.state.CancelDebounce()
	w.state.AbandonRequest()
	w.state.ResetResults()
	w.state.Open = false
	w.navigator.Reset()
	return tea.Batch(w.textInput.Focus(), w.emit(domain.ClearedEvent{}))
}

// Close hides the dropdown and emits Closed
func (w *Widget) Close() tea.Cmd {
	w.state.Open = false
	w.navigator.Reset()
	return w.emit(domain.ClosedEvent{})
}

// Reopen shows the dropdown again without searching
func (w *Widget) Reopen() {
	w.state.Open = true
}

// Submit emits Submitted with the raw query
func (w *Widget) Submit() tea.Cmd {
	return w.emit(domain.SubmittedEvent{Query: w.state.Query})
}

// Pick selects the entry at index within category: the input takes the
// entry's label, the dropdown closes and Picked is emitted. Out of range
// picks are ignored.
func (w *Widget) Pick(category domain.Category, index int) tea.Cmd {
	items := w.state.Results.Items(category)
	if index < 0 || index >= len(items) {
		return nil
	}
	item := items[index]

	w.textInput.SetValue(item.Name)
	w.textInput.CursorEnd()
	w.state.Query = item.Name
	w.state.CancelDebounce()
	w.state.Open = false
	w.navigator.Reset()

	return w.emit(domain.PickedEvent{Label: item.Name, Category: category, Target: item.Target})
}

// SetResults replaces the result set directly. No correlation check is made
// and the open state is left alone.
func (w *Widget) SetResults(p domain.ResultPayload) {
	w.applyResults(p)
}

// SetResultsFor replaces the result set only when requestID is the latest
// outstanding request. It reports whether the payload was applied.
func (w *Widget) SetResultsFor(requestID string, p domain.ResultPayload) bool {
	if !w.state.IsCurrentRequest(requestID) {
		w.log.Debug().
			Int("widget", w.id).
			Str("request_id", requestID).
			Str("current", w.state.RequestID).
			Msg("dropping stale results")
		return false
	}
	w.applyResults(p)
	return true
}

func (w *Widget) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !w.textInput.Focused() {
		return nil
	}

	actions, consumed := w.inputHandler.HandleKey(msg, w)
	if consumed {
		return w.executeActions(actions)
	}

	before := w.textInput.Value()
	var cmd tea.Cmd
	w.textInput, cmd = w.textInput.Update(msg)
	if after := w.textInput.Value(); after != before {
		return tea.Batch(cmd, w.onInput(after))
	}
	return cmd
}

func (w *Widget) executeActions(actions []inputtypes.Action) tea.Cmd {
	var cmds []tea.Cmd
	for _, action := range actions {
		switch a := action.(type) {
		case inputtypes.SubmitAction:
			cmds = append(cmds, w.Submit())
		case inputtypes.PickAction:
			cmds = append(cmds, w.pickEntry(a.Index))
		case inputtypes.NavigateAction:
			w.navigator.SetTotal(w.TotalEntries())
			if a.Direction == "up" {
				w.navigator.Move(-1)
			} else {
				w.navigator.Move(1)
			}
		case inputtypes.CloseAction:
			cmds = append(cmds, w.Close())
		case inputtypes.ClearAction:
			cmds = append(cmds, w.Clear())
		case inputtypes.ReopenAction:
			w.Reopen()
		case inputtypes.ToggleHelpAction:
			w.state.ShowHelp = !w.state.ShowHelp
		}
	}
	return tea.Batch(cmds...)
}

// pickEntry picks by position in the flattened dropdown
func (w *Widget) pickEntry(index int) tea.Cmd {
	entries := logic.Flatten(w.Sections())
	if index < 0 || index >= len(entries) {
		return nil
	}
	entry := entries[index]
	return w.Pick(entry.Category, entry.Index)
}

// onInput applies one keystroke's worth of change. A blank query cancels any
// pending search and closes; anything else opens the dropdown and restarts
// the debounce window.
func (w *Widget) onInput(value string) tea.Cmd {
	w.state.Query = value
	w.navigator.Reset()
	notify := w.emit(domain.InputChangedEvent{Query: value})

	if strings.TrimSpace(value) == "" {
		w.state.CancelDebounce()
		w.state.AbandonRequest()
		w.state.ResetResults()
		w.state.Open = false
		return notify
	}

	w.state.Open = true
	if w.opts.Debounce <= 0 {
		w.state.CancelDebounce()
		return tea.Batch(notify, w.trigger())
	}

	seq := w.state.ArmDebounce()
	id := w.id
	return tea.Batch(notify, tea.Tick(w.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{widgetID: id, seq: seq}
	}))
}

// trigger starts a search for the current query with a fresh correlation id
func (w *Widget) trigger() tea.Cmd {
	query := w.state.Query
	requestID := w.opts.NewRequestID()
	w.state.BeginRequest(requestID)

	w.log.Debug().
		Int("widget", w.id).
		Str("query", query).
		Str("request_id", requestID).
		Str("strategy", w.Strategy().String()).
		Msg("search triggered")

	if w.fetcher != nil {
		return tea.Batch(w.spinner.Tick, w.fetchCmd(requestID, query))
	}
	return tea.Batch(w.spinner.Tick, w.emit(domain.SearchRequestedEvent{Query: query, RequestID: requestID}))
}

func (w *Widget) fetchCmd(requestID, query string) tea.Cmd {
	ctx, fetcher, timeout, id := w.ctx, w.fetcher, w.opts.RequestTimeout, w.id

	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = fetchResultMsg{
					widgetID:  id,
					requestID: requestID,
					query:     query,
					err:       serr.New(fmt.Sprintf("fetcher panicked: %v", r)),
				}
			}
		}()

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		payload, err := fetcher.Fetch(ctx, query)
		return fetchResultMsg{widgetID: id, requestID: requestID, query: query, payload: payload, err: err}
	}
}

func (w *Widget) handleFetchResult(msg fetchResultMsg) tea.Cmd {
	if !w.state.IsCurrentRequest(msg.requestID) {
		w.log.Debug().
			Int("widget", w.id).
			Str("query", msg.query).
			Str("request_id", msg.requestID).
			Msg("dropping stale fetch result")
		return nil
	}

	if msg.err != nil {
		w.log.Warn().
			Err(msg.err).
			Int("widget", w.id).
			Str("query", msg.query).
			Msg("search failed, showing no results")
		w.applyResults(domain.ResultPayload{})
		return nil
	}

	w.applyResults(msg.payload)
	return nil
}

// applyDelivery installs a side-channel envelope and opens the dropdown.
// Envelopes tagged with an older request id are dropped; untagged ones are
// accepted as broadcasts.
func (w *Widget) applyDelivery(ev domain.ResultsDeliveredEvent) {
	if ev.Channel != w.opts.Channel {
		return
	}
	if ev.RequestID != "" && !w.state.IsCurrentRequest(ev.RequestID) {
		w.log.Debug().
			Int("widget", w.id).
			Str("request_id", ev.RequestID).
			Msg("dropping stale side-channel delivery")
		return
	}
	w.applyResults(ev.Payload())
	w.state.Open = true
}

func (w *Widget) applyResults(p domain.ResultPayload) {
	w.state.ReplaceResults(p)
	w.navigator.Reset()
}

// onDelivered runs on the bus dispatcher; it only hands the envelope over
func (w *Widget) onDelivered(e domain.DomainEvent) {
	ev, ok := e.(domain.ResultsDeliveredEvent)
	if !ok || ev.Channel != w.opts.Channel {
		return
	}
	select {
	case <-w.done:
	case w.deliveries <- ev:
	default:
		w.log.Warn().Int("widget", w.id).Str("channel", ev.Channel).Msg("delivery buffer full, dropping envelope")
	}
}

func (w *Widget) waitForDelivery() tea.Cmd {
	if w.unsubscribe == nil {
		return nil
	}
	deliveries, done, id := w.deliveries, w.done, w.id
	return func() tea.Msg {
		select {
		case ev := <-deliveries:
			return deliveryMsg{widgetID: id, event: ev}
		case <-done:
			return nil
		}
	}
}

// emit publishes n on the bus, if any, and returns a command delivering it to the host
func (w *Widget) emit(n domain.Notification) tea.Cmd {
	w.log.Debug().Int("widget", w.id).Str("event", n.Name()).Msg("notification")
	if w.opts.Bus != nil {
		w.opts.Bus.Publish(n)
	}
	id := w.id
	return func() tea.Msg {
		return EventMsg{WidgetID: id, Event: n}
	}
}
