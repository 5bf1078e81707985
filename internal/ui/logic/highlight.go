package logic

import (
	"strings"
	"unicode/utf8"
)

// Span is one run of a rendered label
type Span struct {
	Text       string
	Emphasized bool
}

// Highlight splits label around the first case-insensitive occurrence of
// query. A match yields exactly three spans (prefix, match, suffix) cut from
// the label's own characters; no match yields the label as a single span.
func Highlight(label, query string) []Span {
	start, end := findFold(label, query)
	if start < 0 {
		return []Span{{Text: label}}
	}
	return []Span{
		{Text: label[:start]},
		{Text: label[start:end], Emphasized: true},
		{Text: label[end:]},
	}
}

// findFold returns the byte range of the first case-insensitive occurrence of
// query in s, or -1, -1. Comparison is rune-wise so multi-byte case pairs keep
// their offsets in s.
func findFold(s, query string) (int, int) {
	if query == "" {
		return -1, -1
	}
	n := utf8.RuneCountInString(query)

	for start := 0; start < len(s); {
		end := start
		count := 0
		for end < len(s) && count < n {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
			count++
		}
		if count < n {
			break
		}
		if strings.EqualFold(s[start:end], query) {
			return start, end
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		start += size
	}
	return -1, -1
}

// PlainText joins spans back into the label
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
