package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matsen/recipebox/internal/recipe"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Storage errors.
var (
	ErrStorage        = errors.New("storage error")
	ErrNoDatabaseURI  = errors.New("no database URI configured")
	ErrUnsupportedURI = errors.New("unsupported database URI")
	ErrDuplicateTitle = errors.New("a recipe with this title already exists")
	ErrNotConnected   = errors.New("not connected to recipe store")
)

// DB wraps a SQLite database connection holding recipe documents.
type DB struct {
	db  *sql.DB
	now func() time.Time
}

// selectRecipeFields contains the standard field list for SELECT and RETURNING clauses.
const selectRecipeFields = `id, title, description, ingredients_json, instructions,
	prep_time_minutes, created_at`

// Open connects to the recipe database described by uri and creates the
// schema if needed. See DSN for the accepted URI forms.
func Open(ctx context.Context, uri string) (*DB, error) {
	dsn, err := DSN(uri)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrStorage, err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: connecting: %w", ErrStorage, err)
	}

	// Concurrent invocations wait on each other's write lock instead of failing
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: setting busy timeout: %w", ErrStorage, err)
	}

	if err := createSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %w", ErrStorage, err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// DSN converts a configured database URI into a driver data source name.
// Accepted forms are a plain file path, sqlite://<path> and file:<path>[?query].
func DSN(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", ErrNoDatabaseURI
	}

	if rest, ok := strings.CutPrefix(uri, "sqlite://"); ok {
		if rest == "" {
			return "", fmt.Errorf("%w: %q has no path", ErrUnsupportedURI, uri)
		}
		return rest, nil
	}
	if strings.HasPrefix(uri, "file:") {
		return uri, nil
	}
	if scheme, _, ok := strings.Cut(uri, "://"); ok {
		return "", fmt.Errorf("%w: scheme %q", ErrUnsupportedURI, scheme)
	}
	return uri, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS recipes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL CHECK (title != ''),
			description TEXT,
			ingredients_json TEXT NOT NULL,
			instructions TEXT NOT NULL CHECK (instructions != ''),
			prep_time_minutes REAL CHECK (prep_time_minutes IS NULL OR prep_time_minutes >= 1),
			created_at INTEGER NOT NULL
		);

		-- Titles are the lookup key for find, update and delete
		CREATE UNIQUE INDEX IF NOT EXISTS idx_recipes_title ON recipes(title);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// FindByTitle returns the recipe with exactly this title, or nil if there is none.
func (d *DB) FindByTitle(ctx context.Context, title string) (*recipe.Recipe, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+selectRecipeFields+` FROM recipes WHERE title = ?`, title)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("%w: finding %q: %w", ErrStorage, title, err)
	}
	return r, nil
}

// FindAll returns every recipe in insertion order.
func (d *DB) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+selectRecipeFields+` FROM recipes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing recipes: %w", ErrStorage, err)
	}
	defer rows.Close()

	recipes, err := scanRecipes(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: listing recipes: %w", ErrStorage, err)
	}
	return recipes, nil
}

// Count returns the total number of recipes.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting recipes: %w", ErrStorage, err)
	}
	return count, nil
}

// Insert validates r, assigns it a fresh ID and creation time, and stores it.
// Any ID or CreatedAt already set on r is replaced.
func (d *DB) Insert(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("%w: generating id: %w", ErrStorage, err)
	}
	r.ID = id.String()
	r.CreatedAt = d.now().UTC().Truncate(time.Millisecond)
	return d.insert(ctx, r)
}

// Import stores r keeping its ID and CreatedAt, filling either one in when
// it is missing. It is used to restore exported recipes.
func (d *DB) Import(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error) {
	if r.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("%w: generating id: %w", ErrStorage, err)
		}
		r.ID = id.String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = d.now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Millisecond)
	return d.insert(ctx, r)
}

func (d *DB) insert(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	ingredientsJSON, err := json.Marshal(r.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling ingredients for %q: %w", ErrStorage, r.Title, err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO recipes (
			id, title, description, ingredients_json, instructions,
			prep_time_minutes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, nullableStringValue(r.Description), string(ingredientsJSON), r.Instructions,
		nullableFloat(r.PrepTime), r.CreatedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueTitleViolation(err) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, r.Title)
		}
		return nil, fmt.Errorf("%w: inserting %q: %w", ErrStorage, r.Title, err)
	}

	r.Ingredients = append([]string(nil), r.Ingredients...)
	return &r, nil
}

// UpdateDescriptionByTitle replaces the description of the recipe with this
// title and returns the updated recipe, or nil if there is none.
func (d *DB) UpdateDescriptionByTitle(ctx context.Context, title, description string) (*recipe.Recipe, error) {
	row := d.db.QueryRowContext(ctx,
		`UPDATE recipes SET description = ? WHERE title = ? RETURNING `+selectRecipeFields,
		nullableStringValue(description), title)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("%w: updating %q: %w", ErrStorage, title, err)
	}
	return r, nil
}

// DeleteByTitle removes the recipe with this title and returns it, or nil if
// there is none.
func (d *DB) DeleteByTitle(ctx context.Context, title string) (*recipe.Recipe, error) {
	row := d.db.QueryRowContext(ctx, `DELETE FROM recipes WHERE title = ? RETURNING `+selectRecipeFields, title)
	r, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("%w: deleting %q: %w", ErrStorage, title, err)
	}
	return r, nil
}

// isUniqueTitleViolation reports whether err is the title index rejecting a duplicate.
func isUniqueTitleViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	if serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Older connections report only the primary result code
	return serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(serr.Error(), "recipes.title")
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(s scanner) (*recipe.Recipe, error) {
	var r recipe.Recipe
	var description sql.NullString
	var ingredientsJSON string
	var prepTime sql.NullFloat64
	var createdAt int64

	err := s.Scan(
		&r.ID, &r.Title, &description, &ingredientsJSON, &r.Instructions,
		&prepTime, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	r.Description = description.String
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	if prepTime.Valid {
		r.PrepTime = recipe.Minutes(prepTime.Float64)
	}

	if err := json.Unmarshal([]byte(ingredientsJSON), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("parsing ingredients JSON for %q: %w", r.Title, err)
	}

	return &r, nil
}

func scanRecipes(rows *sql.Rows) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		if r != nil {
			recipes = append(recipes, *r)
		}
	}
	return recipes, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableFloat(n *float64) sql.NullFloat64 {
	if n == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *n, Valid: true}
}
