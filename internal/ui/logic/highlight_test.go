package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		label string
		query string
		want  []Span
	}{
		{
			name:  "case-insensitive prefix keeps label case",
			label: "Ash Trays",
			query: "ash",
			want:  []Span{{Text: ""}, {Text: "Ash", Emphasized: true}, {Text: " Trays"}},
		},
		{
			name:  "middle match",
			label: "Bath Towel",
			query: "TOW",
			want:  []Span{{Text: "Bath "}, {Text: "Tow", Emphasized: true}, {Text: "el"}},
		},
		{
			name:  "only first occurrence",
			label: "soap and soap dish",
			query: "soap",
			want:  []Span{{Text: ""}, {Text: "soap", Emphasized: true}, {Text: " and soap dish"}},
		},
		{
			name:  "suffix match",
			label: "Pharmacy",
			query: "macy",
			want:  []Span{{Text: "Phar"}, {Text: "macy", Emphasized: true}, {Text: ""}},
		},
		{
			name:  "no match",
			label: "Pharmacy",
			query: "xyz",
			want:  []Span{{Text: "Pharmacy"}},
		},
		{
			name:  "empty query",
			label: "Pharmacy",
			query: "",
			want:  []Span{{Text: "Pharmacy"}},
		},
		{
			name:  "query longer than label",
			label: "Ash",
			query: "ash trays",
			want:  []Span{{Text: "Ash"}},
		},
		{
			name:  "multi-byte runes",
			label: "Crème Brûlée",
			query: "BRÛ",
			want:  []Span{{Text: "Crème "}, {Text: "Brû", Emphasized: true}, {Text: "lée"}},
		},
		{
			name:  "whitespace is literal",
			label: "Ash Trays",
			query: "h t",
			want:  []Span{{Text: "As"}, {Text: "h T", Emphasized: true}, {Text: "rays"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.label, tt.query)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.label, PlainText(got))
		})
	}
}
