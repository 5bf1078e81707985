package domain

import "strings"

// NormalizeItems converts a loosely typed sequence into items. Elements may be
// strings, maps with name/url/image keys, or already-typed items; anything else
// is skipped, as are entries without a name.
func NormalizeItems(v interface{}) []Item {
	var items []Item
	add := func(item Item) {
		if strings.TrimSpace(item.Name) != "" {
			items = append(items, item)
		}
	}

	switch seq := v.(type) {
	case []Item:
		for _, item := range seq {
			add(item)
		}
	case []string:
		for _, name := range seq {
			add(Item{Name: name})
		}
	case []map[string]interface{}:
		for _, m := range seq {
			add(itemFromMap(m))
		}
	case []interface{}:
		for _, elem := range seq {
			switch e := elem.(type) {
			case string:
				add(Item{Name: e})
			case Item:
				add(e)
			case map[string]interface{}:
				add(itemFromMap(e))
			case map[string]string:
				add(Item{Name: e["name"], Target: e["url"], Image: e["image"]})
			}
		}
	}
	return items
}

func itemFromMap(m map[string]interface{}) Item {
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	return Item{
		Name:   str("name"),
		Target: str("url"),
		Image:  str("image"),
	}
}
