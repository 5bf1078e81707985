package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"typeahead/internal/domain"
	"typeahead/internal/logging"
	"typeahead/internal/ui"
)

// Searcher answers delegated search requests
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (domain.ResultPayload, error)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Model hosts a single search widget. In delegated mode it answers the
// widget's search requests from searcher.
type Model struct {
	ctx      context.Context
	log      *zerolog.Logger
	widget   *ui.Widget
	searcher Searcher
	limit    int

	status string
	picked []domain.PickedEvent
}

// New creates the host model. searcher may be nil when the widget fetches
// its own results.
func New(ctx context.Context, widget *ui.Widget, searcher Searcher, limit int) *Model {
	ctx = logging.WithComponent(ctx, "app")
	return &Model{
		ctx:      ctx,
		log:      logging.FromContext(ctx),
		widget:   widget,
		searcher: searcher,
		limit:    limit,
		status:   fmt.Sprintf("mode: %s", widget.Strategy()),
	}
}

// Picked returns every entry picked so far
func (m *Model) Picked() []domain.PickedEvent {
	return m.picked
}

func (m *Model) Init() tea.Cmd {
	return m.widget.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.widget.Shutdown()
			return m, tea.Quit
		}

	case ui.EventMsg:
		if msg.WidgetID == m.widget.ID() {
			return m, m.handleEvent(msg.Event)
		}
	}

	_, cmd := m.widget.Update(msg)
	return m, cmd
}

func (m *Model) handleEvent(event domain.Notification) tea.Cmd {
	switch e := event.(type) {
	case domain.SearchRequestedEvent:
		m.status = fmt.Sprintf("searching %q", e.Query)
		return m.answer(e)
	case domain.SubmittedEvent:
		m.status = fmt.Sprintf("submitted %q", e.Query)
	case domain.PickedEvent:
		m.picked = append(m.picked, e)
		if e.Target != "" {
			m.status = fmt.Sprintf("open %s", e.Target)
		} else {
			m.status = fmt.Sprintf("picked %s %q", e.Category, e.Label)
		}
	case domain.ClearedEvent:
		m.status = "cleared"
	case domain.ClosedEvent:
		m.status = "closed"
	}
	return nil
}

// answer runs a delegated search and routes the payload back to the widget
// under the request's correlation id
func (m *Model) answer(req domain.SearchRequestedEvent) tea.Cmd {
	if m.searcher == nil {
		return nil
	}
	ctx, searcher, limit, id, log := m.ctx, m.searcher, m.limit, m.widget.ID(), m.log
	return func() tea.Msg {
		p, err := searcher.Search(ctx, req.Query, limit)
		if err != nil {
			log.Warn().Err(err).Str("query", req.Query).Msg("delegated search failed")
			p = domain.ResultPayload{}
		}
		return ui.ResultsMsg{WidgetID: id, RequestID: req.RequestID, Payload: p}
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("typeahead"))
	b.WriteString("\n")
	b.WriteString(m.widget.View())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}
