package catalog

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/rohanthewiz/serr"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryPath opens a private in-memory catalog
const MemoryPath = ":memory:"

var memoryDBs atomic.Int64

func openDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on", path)
	if path == MemoryPath {
		// each in-memory catalog gets its own named database
		dsn = fmt.Sprintf("file:catalog-%d?mode=memory&cache=shared", memoryDBs.Add(1))
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, serr.Wrap(err, "failed to open database", "path", path)
	}
	if path == MemoryPath {
		// the database lives as long as one connection does
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, serr.Wrap(err, "failed to ping database", "path", path)
	}

	if err := runMigrations(db); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, serr.Wrap(err, "failed to run migrations", "close_error", cerr.Error())
		}
		return nil, serr.Wrap(err, "failed to run migrations")
	}
	return db, nil
}

type migration struct {
	version int
	name    string
}

// pendingMigrations lists up migrations in version order
func pendingMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, serr.Wrap(err, "failed to read migrations directory")
	}

	var ups []migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		// e.g. "000001_create_entries.up.sql"
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version := 0
		if _, err := fmt.Sscanf(prefix, "%d", &version); err != nil {
			continue
		}
		ups = append(ups, migration{version: version, name: name})
	}

	sort.Slice(ups, func(i, j int) bool { return ups[i].version < ups[j].version })
	return ups, nil
}

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty BOOLEAN NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return serr.Wrap(err, "failed to create migrations table")
	}

	migrations, err := pendingMigrations()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", m.version).Scan(&applied); err != nil {
			return serr.Wrap(err, "failed to check migration status")
		}
		if applied > 0 {
			continue
		}

		data, err := fs.ReadFile(migrationsFS, "migrations/"+m.name)
		if err != nil {
			return serr.Wrap(err, "failed to read migration", "name", m.name)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return serr.Wrap(err, "failed to apply migration", "name", m.name)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return serr.Wrap(err, "failed to record migration", "name", m.name)
		}
	}
	return nil
}
