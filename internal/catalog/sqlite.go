package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
	id          INTEGER PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS pies (
	id                INTEGER PRIMARY KEY,
	name              TEXT NOT NULL,
	short_description TEXT NOT NULL DEFAULT '',
	price             REAL NOT NULL,
	category_id       INTEGER NOT NULL REFERENCES categories(id),
	in_stock          INTEGER NOT NULL DEFAULT 1,
	pie_of_the_week   INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteRepository backs the catalog with a SQLite database. It implements
// both repository interfaces plus the registry's release hook, so closing
// the container closes the database.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. SQLite supports one writer at a time, so the pool is kept at a
// single connection.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect catalog database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000; PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Release closes the database. Invoked by the registry on container close.
func (r *SQLiteRepository) Release(ctx context.Context) error {
	return r.db.Close()
}

// Seed replaces the stored catalog with the given data.
func (r *SQLiteRepository) Seed(ctx context.Context, categories []Category, pies []Pie) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pies"); err != nil {
		return fmt.Errorf("clear pies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for _, c := range categories {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO categories (id, name, description) VALUES (?, ?, ?)",
			c.ID, c.Name, c.Description); err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
	}
	for _, p := range pies {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO pies (id, name, short_description, price, category_id, in_stock, pie_of_the_week) VALUES (?, ?, ?, ?, ?, ?, ?)",
			p.ID, p.Name, p.ShortDescription, p.Price, p.CategoryID, p.InStock, p.PieOfTheWeek); err != nil {
			return fmt.Errorf("insert pie %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description FROM categories ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteRepository) Pies(ctx context.Context) ([]Pie, error) {
	return r.queryPies(ctx,
		"SELECT id, name, short_description, price, category_id, in_stock, pie_of_the_week FROM pies ORDER BY id")
}

func (r *SQLiteRepository) PiesOfTheWeek(ctx context.Context) ([]Pie, error) {
	return r.queryPies(ctx,
		"SELECT id, name, short_description, price, category_id, in_stock, pie_of_the_week FROM pies WHERE pie_of_the_week = 1 ORDER BY id")
}

func (r *SQLiteRepository) PieByID(ctx context.Context, id int64) (Pie, error) {
	var p Pie
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, short_description, price, category_id, in_stock, pie_of_the_week FROM pies WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.ShortDescription, &p.Price, &p.CategoryID, &p.InStock, &p.PieOfTheWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return Pie{}, ErrPieNotFound
	}
	if err != nil {
		return Pie{}, fmt.Errorf("query pie %d: %w", id, err)
	}
	return p, nil
}

func (r *SQLiteRepository) queryPies(ctx context.Context, query string) ([]Pie, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query pies: %w", err)
	}
	defer rows.Close()

	var pies []Pie
	for rows.Next() {
		var p Pie
		if err := rows.Scan(&p.ID, &p.Name, &p.ShortDescription, &p.Price, &p.CategoryID, &p.InStock, &p.PieOfTheWeek); err != nil {
			return nil, fmt.Errorf("scan pie: %w", err)
		}
		pies = append(pies, p)
	}
	return pies, rows.Err()
}
