package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typeahead/internal/domain"
)

func TestSelectClosedRendersNothing(t *testing.T) {
	got := Select(RenderInput{
		Query:   "ash",
		Loading: true,
		Results: domain.ResultPayload{Suggestions: []domain.Item{{Name: "ash"}}},
	})
	assert.Empty(t, got)
}

func TestSelectProductsOnly(t *testing.T) {
	got := Select(RenderInput{
		Query: "ash",
		Open:  true,
		Results: domain.ResultPayload{
			Products: []domain.Item{{Name: "Ash Trays", Target: "/products/ash-trays"}},
		},
	})

	require.Equal(t, []SectionKind{SectionProducts}, Kinds(got))
	require.Len(t, got[0].Entries, 1)
	entry := got[0].Entries[0]
	assert.Equal(t, "Ash Trays", entry.Item.Name)
	assert.Equal(t, "/products/ash-trays", entry.Item.Target)
	assert.Equal(t, domain.CategoryProduct, entry.Category)
	assert.Equal(t, []Span{{Text: ""}, {Text: "Ash", Emphasized: true}, {Text: " Trays"}}, entry.Spans)
}

func TestSelectFixedSectionOrder(t *testing.T) {
	got := Select(RenderInput{
		Query: "t",
		Open:  true,
		Results: domain.ResultPayload{
			Pages:       []domain.Item{{Name: "Toiletries"}},
			Products:    []domain.Item{{Name: "Towel"}, {Name: "Tissue"}},
			Suggestions: []domain.Item{{Name: "toothpaste"}},
		},
	})

	assert.Equal(t, []SectionKind{SectionSuggestions, SectionProducts, SectionPages}, Kinds(got))
	assert.Equal(t, "Towel", got[1].Entries[0].Item.Name)
	assert.Equal(t, "Tissue", got[1].Entries[1].Item.Name)
	assert.Equal(t, 1, got[1].Entries[1].Index)
}

func TestSelectLoadingStacksAboveResults(t *testing.T) {
	got := Select(RenderInput{
		Query:   "towel",
		Open:    true,
		Loading: true,
		Results: domain.ResultPayload{Suggestions: []domain.Item{{Name: "towel"}}},
	})
	assert.Equal(t, []SectionKind{SectionLoading, SectionSuggestions}, Kinds(got))
}

func TestSelectEmptyState(t *testing.T) {
	got := Select(RenderInput{Query: "xyz123", Open: true})

	require.Equal(t, []SectionKind{SectionEmpty}, Kinds(got))
	assert.Equal(t, "xyz123", got[0].Query)
}

func TestSelectNoEmptyStateWhileLoading(t *testing.T) {
	got := Select(RenderInput{Query: "xyz123", Open: true, Loading: true})
	assert.Equal(t, []SectionKind{SectionLoading}, Kinds(got))
}

func TestSelectNoEmptyStateForBlankQuery(t *testing.T) {
	assert.Empty(t, Select(RenderInput{Query: "", Open: true}))
	assert.Empty(t, Select(RenderInput{Query: "   ", Open: true}))
}

func TestSelectIsDeterministic(t *testing.T) {
	in := RenderInput{
		Query: "ash",
		Open:  true,
		Results: domain.ResultPayload{
			Suggestions: []domain.Item{{Name: "ash"}},
			Pages:       []domain.Item{{Name: "Ashes", Target: "/pages/ashes"}},
		},
	}
	assert.Equal(t, Select(in), Select(in))
}

func TestFlatten(t *testing.T) {
	sections := Select(RenderInput{
		Query: "a",
		Open:  true,
		Results: domain.ResultPayload{
			Suggestions: []domain.Item{{Name: "a1"}},
			Pages:       []domain.Item{{Name: "a2"}, {Name: "a3"}},
		},
		Loading: true,
	})

	entries := Flatten(sections)
	require.Len(t, entries, 3)
	assert.Equal(t, "a1", entries[0].Item.Name)
	assert.Equal(t, domain.CategoryPage, entries[2].Category)
}
