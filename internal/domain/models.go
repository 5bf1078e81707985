package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Category tags which dropdown section an entry belongs to
type Category string

const (
	CategorySuggestion Category = "suggestion"
	CategoryProduct    Category = "product"
	CategoryPage       Category = "page"
)

// Categories lists the result sections in render order
var Categories = []Category{CategorySuggestion, CategoryProduct, CategoryPage}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategorySuggestion, CategoryProduct, CategoryPage:
		return true
	}
	return false
}

// Item is the canonical shape of a result entry. Suggestions, products and
// pages all normalize into it at the boundary.
type Item struct {
	Name   string `json:"name"`
	Target string `json:"url,omitempty"`
	Image  string `json:"image,omitempty"`
}

// HasTarget reports whether the item links somewhere
func (i Item) HasTarget() bool {
	return i.Target != ""
}

// UnmarshalJSON accepts either a bare string or a {name,url,image} object
func (i *Item) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*i = Item{Name: name}
		return nil
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = itemFromMap(raw)
	return nil
}

// ResultPayload is the three-part search response. A nil or empty slice means
// the section is not rendered.
type ResultPayload struct {
	Suggestions []Item `json:"suggestions,omitempty"`
	Products    []Item `json:"products,omitempty"`
	Pages       []Item `json:"pages,omitempty"`
}

// UnmarshalJSON decodes a payload tolerantly: fields of the wrong type and
// entries that cannot be read as items are dropped instead of failing.
func (p *ResultPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = ResultPayload{
		Suggestions: decodeItems(raw["suggestions"]),
		Products:    decodeItems(raw["products"]),
		Pages:       decodeItems(raw["pages"]),
	}
	return nil
}

// IsEmpty reports whether all three sections are empty
func (p ResultPayload) IsEmpty() bool {
	return len(p.Suggestions) == 0 && len(p.Products) == 0 && len(p.Pages) == 0
}

// Items returns the entries of one section
func (p ResultPayload) Items(c Category) []Item {
	switch c {
	case CategorySuggestion:
		return p.Suggestions
	case CategoryProduct:
		return p.Products
	case CategoryPage:
		return p.Pages
	default:
		return nil
	}
}

// Count returns the total number of entries across sections
func (p ResultPayload) Count() int {
	return len(p.Suggestions) + len(p.Products) + len(p.Pages)
}

func decodeItems(data json.RawMessage) []Item {
	if len(data) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil
	}

	items := make([]Item, 0, len(elems))
	for _, elem := range elems {
		var item Item
		if err := json.Unmarshal(elem, &item); err != nil {
			continue
		}
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil
	}
	return items
}
