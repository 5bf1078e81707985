package views

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"typeahead/internal/domain"
	"typeahead/internal/ui/logic"
)

// SectionRenderer draws one result section of the dropdown
type SectionRenderer struct {
	styles *Styles
}

func NewSectionRenderer(styles *Styles) *SectionRenderer {
	return &SectionRenderer{styles: styles}
}

// Render draws the section title and its entries. offset is the flattened
// index of the first entry so the selected row can be matched.
func (r *SectionRenderer) Render(s logic.Section, offset, selected, maxWidth int) string {
	var b strings.Builder
	b.WriteString(r.styles.SectionTitle.Render(s.Kind.Title()))

	for i, entry := range s.Entries {
		b.WriteString("\n")
		b.WriteString(r.renderEntry(entry, offset+i == selected, maxWidth))
	}
	return b.String()
}

// RenderEmpty draws the no-results message for query
func (r *SectionRenderer) RenderEmpty(query string) string {
	return r.styles.Empty.Render(fmt.Sprintf("No results for %q", query))
}

func (r *SectionRenderer) renderEntry(entry logic.Entry, selected bool, maxWidth int) string {
	var line strings.Builder

	if selected {
		line.WriteString("› ")
	}
	if entry.Category == domain.CategoryProduct && entry.Item.Image != "" {
		line.WriteString(r.styles.Thumbnail.Render("▣ "))
	}
	for _, span := range TruncateSpans(entry.Spans, maxWidth) {
		if span.Emphasized {
			line.WriteString(r.styles.Match.Render(span.Text))
		} else {
			line.WriteString(span.Text)
		}
	}
	if entry.Item.HasTarget() {
		line.WriteString("  ")
		line.WriteString(r.styles.Target.Render("→ " + entry.Item.Target))
	}

	if selected {
		return r.styles.Selected.Render(line.String())
	}
	return r.styles.Entry.Render(line.String())
}

// TruncateSpans cuts spans so their combined text fits max runes, ending
// with an ellipsis. A max of zero or less disables truncation.
func TruncateSpans(spans []logic.Span, max int) []logic.Span {
	if max <= 0 || utf8.RuneCountInString(logic.PlainText(spans)) <= max {
		return spans
	}

	budget := max - 1 // room for the ellipsis
	var out []logic.Span
	for _, span := range spans {
		if budget <= 0 {
			break
		}
		n := utf8.RuneCountInString(span.Text)
		if n <= budget {
			out = append(out, span)
			budget -= n
			continue
		}
		out = append(out, logic.Span{Text: string([]rune(span.Text)[:budget]), Emphasized: span.Emphasized})
		budget = 0
	}
	return append(out, logic.Span{Text: "…"})
}
