package saves

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/spix/internal/errors"
	"github.com/KirkDiggler/spix/internal/pkg/clock"
	"github.com/KirkDiggler/spix/internal/repositories/saves/migrations"
)

const migrationTable = "schema_migrations"

// SQLiteConfig contains configuration for the SQLite save repository
type SQLiteConfig struct {
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// SQLiteRepository keeps saves in a single SQLite table. Close releases the
// database handle.
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLite opens the database at cfg.Path and applies embedded migrations
func OpenSQLite(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite db")
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &SQLiteRepository{db: db, clock: clk}, nil
}

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SQLiteRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	name, err := validatePut(input)
	if err != nil {
		return nil, err
	}

	savedAt := r.clock.Now().UTC()
	data, err := encode(name, savedAt, input.Snapshot)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saves (owner, name, snapshot, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (owner, name) DO UPDATE SET snapshot = excluded.snapshot, saved_at = excluded.saved_at`,
		input.Owner, name, string(data), savedAt.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store save %s", name)
	}

	slog.Debug("Save written", "backend", "sqlite", "owner", input.Owner, "name", name)
	return &PutOutput{Summary: Summary{Name: name, SavedAt: savedAt}}, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	name, err := validateKey(input.Owner, input.Name)
	if err != nil {
		return nil, err
	}

	var raw string
	err = r.db.QueryRowContext(ctx,
		`SELECT snapshot FROM saves WHERE owner = ? AND name = ?`,
		input.Owner, name,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("save %s not found", name).WithMeta("name", name)
		}
		return nil, errors.Wrapf(err, "failed to get save %s", name)
	}
	return decode([]byte(raw))
}

func (r *SQLiteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	vb := errors.NewValidationBuilder()
	validateSegment("owner", input.Owner, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name, saved_at FROM saves WHERE owner = ? ORDER BY name`,
		input.Owner,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list saves for %s", input.Owner)
	}
	defer func() { _ = rows.Close() }()

	var saves []Summary
	for rows.Next() {
		var (
			name    string
			savedAt int64
		)
		if err := rows.Scan(&name, &savedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan save row")
		}
		saves = append(saves, Summary{Name: name, SavedAt: time.UnixMilli(savedAt).UTC()})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read save rows")
	}
	return &ListOutput{Saves: saves}, nil
}

// applyMigrations runs each embedded .sql file at most once, in name order,
// recording applied files in schema_migrations
func applyMigrations(db *sql.DB, migrationFS fs.FS) error {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return errors.Wrap(err, "failed to read migrations dir")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return errors.Wrap(err, "failed to ensure migration table")
	}

	for _, file := range files {
		var found int
		err := db.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, file).Scan(&found)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return errors.Wrapf(err, "failed to check migration %s", file)
		}

		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration %s", file)
		}
		up := upSection(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrapf(err, "failed to begin migration %s", file)
		}
		if _, err := tx.Exec(up); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to apply migration %s", file)
		}
		if _, err := tx.Exec(
			`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			file, time.Now().UTC().UnixMilli(),
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to record migration %s", file)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrapf(err, "failed to commit migration %s", file)
		}
		slog.Debug("Migration applied", "file", file)
	}
	return nil
}

// upSection returns the SQL between "-- +migrate Up" and "-- +migrate Down"
func upSection(content string) string {
	const upMarker, downMarker = "-- +migrate Up", "-- +migrate Down"
	start := strings.Index(content, upMarker)
	if start == -1 {
		return content
	}
	content = content[start+len(upMarker):]
	if end := strings.Index(content, downMarker); end != -1 {
		content = content[:end]
	}
	return content
}

var _ Repository = (*SQLiteRepository)(nil)
