package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rohanthewiz/serr"

	"typeahead/internal/domain"
	"typeahead/internal/fetch"
)

// DefaultLimit caps each section when no limit is given
const DefaultLimit = 5

// Catalog is a small searchable store of suggestions, products and pages
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog at path and applies migrations.
// MemoryPath gives a throwaway catalog.
func Open(path string) (*Catalog, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Search returns up to limit case-insensitive substring matches per category.
// A blank query matches nothing.
func (c *Catalog) Search(ctx context.Context, query string, limit int) (domain.ResultPayload, error) {
	var p domain.ResultPayload
	query = strings.TrimSpace(query)
	if query == "" {
		return p, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	for _, category := range domain.Categories {
		items, err := c.searchCategory(ctx, category, pattern, limit)
		if err != nil {
			return domain.ResultPayload{}, err
		}
		switch category {
		case domain.CategorySuggestion:
			p.Suggestions = items
		case domain.CategoryProduct:
			p.Products = items
		case domain.CategoryPage:
			p.Pages = items
		}
	}
	return p, nil
}

func (c *Catalog) searchCategory(ctx context.Context, category domain.Category, pattern string, limit int) ([]domain.Item, error) {
	// prefix matches rank ahead of inner matches
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, target, image FROM entries
		WHERE category = ? AND LOWER(name) LIKE ? ESCAPE '\'
		ORDER BY CASE WHEN LOWER(name) LIKE ? ESCAPE '\' THEN 0 ELSE 1 END, name COLLATE NOCASE ASC
		LIMIT ?
	`, string(category), pattern, strings.TrimPrefix(pattern, "%"), limit)
	if err != nil {
		return nil, serr.Wrap(err, "failed to search entries", "category", string(category))
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.Name, &item.Target, &item.Image); err != nil {
			return nil, serr.Wrap(err, "failed to scan entry")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Wrap(err, "failed to iterate entries")
	}
	return items, nil
}

// Add inserts or replaces an entry
func (c *Catalog) Add(ctx context.Context, category domain.Category, item domain.Item) error {
	if !category.Valid() {
		return serr.New("unknown category: " + string(category))
	}
	if strings.TrimSpace(item.Name) == "" {
		return serr.New("entry name is required")
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO entries (category, name, target, image) VALUES (?, ?, ?, ?)
		ON CONFLICT (category, name) DO UPDATE SET target = excluded.target, image = excluded.image
	`, string(category), item.Name, item.Target, item.Image)
	if err != nil {
		return serr.Wrap(err, "failed to add entry", "name", item.Name)
	}
	return nil
}

// Count returns the number of entries across all categories
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, serr.Wrap(err, "failed to count entries")
	}
	return n, nil
}

// Entry is one stored catalog row
type Entry struct {
	Category domain.Category
	domain.Item
}

// List returns every entry ordered by category then name
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT category, name, target, image FROM entries
		ORDER BY CASE category WHEN 'suggestion' THEN 0 WHEN 'product' THEN 1 ELSE 2 END, name COLLATE NOCASE ASC
	`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list entries")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var category string
		if err := rows.Scan(&category, &e.Name, &e.Target, &e.Image); err != nil {
			return nil, serr.Wrap(err, "failed to scan entry")
		}
		e.Category = domain.Category(category)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Wrap(err, "failed to iterate entries")
	}
	return entries, nil
}

// Fetcher adapts the catalog to the widget's self-fetch strategy
func (c *Catalog) Fetcher(limit int) fetch.Fetcher {
	return fetch.FetcherFunc(func(ctx context.Context, query string) (domain.ResultPayload, error) {
		return c.Search(ctx, query, limit)
	})
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
