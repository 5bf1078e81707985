package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rohanthewiz/rweb"

	"typeahead/internal/domain"
	"typeahead/internal/fetch"
	"typeahead/internal/ui/logic"
	"typeahead/internal/ui/views"
)

// APIResponse wraps non-search responses
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeSuccess(ctx rweb.Context, status int, data interface{}) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: true, Data: data})
}

func writeError(ctx rweb.Context, status int, message string) error {
	ctx.SetStatus(status)
	return ctx.WriteJSON(APIResponse{Success: false, Error: message})
}

func (s *Server) setupRoutes() {
	s.srv.Get("/health", s.health)
	s.srv.Get("/search", s.search)
	s.srv.Get("/preview", s.preview)
	s.srv.Post("/deliver", s.deliver)
}

func (s *Server) health(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, map[string]string{"status": "ok"})
}

// search handles GET /search?q= and answers with a bare result payload, the
// shape the widget's self-fetch strategy decodes
func (s *Server) search(ctx rweb.Context) error {
	query := ctx.Request().QueryParam(fetch.QueryParam)

	p, err := s.searcher.Search(s.ctx, query, s.opts.Limit)
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("search failed")
		return writeError(ctx, http.StatusInternalServerError, "search failed")
	}
	return ctx.WriteJSON(p)
}

// preview handles GET /preview?q= and renders the dropdown as HTML
func (s *Server) preview(ctx rweb.Context) error {
	query := ctx.Request().QueryParam(fetch.QueryParam)

	var p domain.ResultPayload
	if strings.TrimSpace(query) != "" {
		var err error
		p, err = s.searcher.Search(s.ctx, query, s.opts.Limit)
		if err != nil {
			s.log.Error().Err(err).Str("query", query).Msg("preview search failed")
			return writeError(ctx, http.StatusInternalServerError, "search failed")
		}
	}

	html := views.RenderHTML(views.Dropdown{
		Placeholder: "Search",
		Query:       query,
		Channel:     s.opts.Channel,
		Sections: logic.Select(logic.RenderInput{
			Query:   query,
			Results: p,
			Open:    strings.TrimSpace(query) != "",
		}),
		SelectedIndex: logic.NoSelection,
	})
	return ctx.WriteHTML(html)
}

// deliver handles POST /deliver with a side-channel envelope and publishes
// it for widgets listening on the envelope's channel
func (s *Server) deliver(ctx rweb.Context) error {
	if s.bus == nil {
		return writeError(ctx, http.StatusServiceUnavailable, "no listeners")
	}

	var ev domain.ResultsDeliveredEvent
	if err := json.Unmarshal(ctx.Request().Body(), &ev); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid envelope")
	}
	if ev.Channel == "" {
		ev.Channel = s.opts.Channel
	}

	s.bus.Publish(ev)
	s.log.Debug().Str("channel", ev.Channel).Str("request_id", ev.RequestID).Msg("delivery published")
	return writeSuccess(ctx, http.StatusAccepted, map[string]string{"channel": ev.Channel})
}
