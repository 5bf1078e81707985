package views

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/rohanthewiz/element"

	"typeahead/internal/domain"
	"typeahead/internal/ui/logic"
)

// Dropdown renders the widget as an HTML fragment for hosts that serve it
// over HTTP. Field values mirror the terminal view.
type Dropdown struct {
	Placeholder   string
	Query         string
	Channel       string
	Sections      []logic.Section
	SelectedIndex int
}

// Render implements element.Component
func (d Dropdown) Render(b *element.Builder) (x any) {
	// element writes attribute values raw
	b.DivClass("typeahead", "data-channel", html.EscapeString(d.Channel)).R(
		b.Form("class", "typeahead-form", "role", "search", "onsubmit", "return false").R(
			b.Input("type", "search", "name", "q", "class", "typeahead-input", "autocomplete", "off",
				"placeholder", html.EscapeString(d.Placeholder), "value", html.EscapeString(d.Query)),
		),
		func() (x any) {
			if len(d.Sections) == 0 {
				return
			}
			offset := 0
			b.DivClass("typeahead-dropdown", "role", "listbox").R(
				func() (x any) {
					for _, s := range d.Sections {
						d.renderSection(b, s, offset)
						offset += len(s.Entries)
					}
					return
				}(),
			)
			return
		}(),
	)
	return
}

func (d Dropdown) renderSection(b *element.Builder, s logic.Section, offset int) {
	switch s.Kind {
	case logic.SectionLoading:
		b.DivClass("typeahead-loading", "aria-busy", "true").T("Searching…")
	case logic.SectionEmpty:
		b.P("class", "typeahead-empty").T("No results for &quot;" + html.EscapeString(s.Query) + "&quot;")
	default:
		b.DivClass("typeahead-section typeahead-"+s.Kind.String()).R(
			b.SpanClass("typeahead-section-title").T(s.Kind.Title()),
			b.UlClass("typeahead-list").R(
				func() (x any) {
					for i, entry := range s.Entries {
						d.renderEntry(b, entry, offset+i)
					}
					return
				}(),
			),
		)
	}
}

func (d Dropdown) renderEntry(b *element.Builder, entry logic.Entry, index int) {
	class := "typeahead-entry"
	if index == d.SelectedIndex {
		class += " selected"
	}

	label := func() (x any) {
		// the image lands inside a CSS url('...'), where quotes and parens would break out
		image := entry.Item.Image
		if entry.Category == domain.CategoryProduct && SafeURL(image) && !strings.ContainsAny(image, `'"()\`) {
			b.Span("class", "typeahead-thumb",
				"style", "background-image:url('"+html.EscapeString(image)+"')").R()
		}
		for _, span := range entry.Spans {
			if span.Emphasized {
				b.SpanClass("typeahead-match").T(html.EscapeString(span.Text))
			} else {
				b.T(html.EscapeString(span.Text))
			}
		}
		return
	}

	b.Li("class", class, "role", "option", "data-index", strconv.Itoa(index),
		"data-category", html.EscapeString(string(entry.Category))).R(
		func() (x any) {
			if SafeURL(entry.Item.Target) {
				b.A("href", html.EscapeString(entry.Item.Target)).R(label())
			} else {
				b.Span("class", "typeahead-label").R(label())
			}
			return
		}(),
	)
}

// SafeURL reports whether target may be used as a link or image source.
// Only relative references and http(s) URLs pass.
func SafeURL(target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return true
	}
	return false
}

// RenderHTML renders the dropdown to a string
func RenderHTML(d Dropdown) string {
	b := element.NewBuilder()
	d.Render(b)
	return b.String()
}
