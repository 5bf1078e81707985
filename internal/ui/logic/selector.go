package logic

import (
	"strings"

	"typeahead/internal/domain"
)

// SectionKind identifies one block of the dropdown
type SectionKind int

const (
	SectionLoading SectionKind = iota
	SectionSuggestions
	SectionProducts
	SectionPages
	SectionEmpty
)

func (k SectionKind) String() string {
	switch k {
	case SectionLoading:
		return "loading"
	case SectionSuggestions:
		return "suggestions"
	case SectionProducts:
		return "products"
	case SectionPages:
		return "pages"
	case SectionEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Title is the heading shown above a result section
func (k SectionKind) Title() string {
	switch k {
	case SectionSuggestions:
		return "Suggestions"
	case SectionProducts:
		return "Products"
	case SectionPages:
		return "Pages"
	default:
		return ""
	}
}

// Entry is one selectable row with its highlighted label
type Entry struct {
	Item     domain.Item
	Category domain.Category
	Index    int // position within its section
	Spans    []Span
}

// Section is one block of the dropdown
type Section struct {
	Kind    SectionKind
	Entries []Entry
	Query   string // set on the empty-state section
}

// RenderInput is everything the selector looks at
type RenderInput struct {
	Query   string
	Results domain.ResultPayload
	Loading bool
	Open    bool
}

var resultSections = []struct {
	kind     SectionKind
	category domain.Category
}{
	{SectionSuggestions, domain.CategorySuggestion},
	{SectionProducts, domain.CategoryProduct},
	{SectionPages, domain.CategoryPage},
}

// Select decides which sections to draw. A closed dropdown draws nothing.
// Otherwise loading, suggestions, products and pages stack in that fixed
// order; the empty state appears only when nothing is loading, the query is
// non-blank and every sequence is empty.
func Select(in RenderInput) []Section {
	if !in.Open {
		return nil
	}

	var sections []Section
	if in.Loading {
		sections = append(sections, Section{Kind: SectionLoading})
	}

	for _, rs := range resultSections {
		items := in.Results.Items(rs.category)
		if len(items) == 0 {
			continue
		}
		entries := make([]Entry, len(items))
		for i, item := range items {
			entries[i] = Entry{
				Item:     item,
				Category: rs.category,
				Index:    i,
				Spans:    Highlight(item.Name, in.Query),
			}
		}
		sections = append(sections, Section{Kind: rs.kind, Entries: entries})
	}

	if !in.Loading && strings.TrimSpace(in.Query) != "" && in.Results.IsEmpty() {
		sections = append(sections, Section{Kind: SectionEmpty, Query: in.Query})
	}
	return sections
}

// Flatten lists selectable entries across sections in display order
func Flatten(sections []Section) []Entry {
	var entries []Entry
	for _, s := range sections {
		entries = append(entries, s.Entries...)
	}
	return entries
}

// Kinds lists section kinds, mostly for assertions and logging
func Kinds(sections []Section) []SectionKind {
	kinds := make([]SectionKind, len(sections))
	for i, s := range sections {
		kinds[i] = s.Kind
	}
	return kinds
}
