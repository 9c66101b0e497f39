package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hollowaylabs/vitrine/internal/types"
	_ "modernc.org/sqlite"
)

// Repository is the SQLite-backed product catalog.
type Repository struct {
	db *sql.DB
}

// NewRepository opens the catalog database at dbPath.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewRepository(dbPath string) (*Repository, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable pragmas for performance and safety
	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	// Run goose migrations
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// ImportProducts upserts products by id and returns the number written.
// Re-importing the same file is idempotent; existing rows are updated in place.
func (r *Repository) ImportProducts(ctx context.Context, products []types.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, name, category, brand, price, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			brand = excluded.brand,
			price = excluded.price,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339)

	written := 0
	for _, p := range products {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsBytes, err := json.Marshal(tags)
		if err != nil {
			return 0, fmt.Errorf("marshal tags: %w", err)
		}

		_, err = stmt.ExecContext(ctx,
			p.ID,
			p.Name,
			p.Category,
			p.Brand,
			p.Price,
			string(tagsBytes),
			nowStr,
			nowStr,
		)
		if err != nil {
			return 0, fmt.Errorf("insert product %s: %w", p.ID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return written, nil
}

// ListProducts returns all products in insertion order.
// Insertion order matters: the prompt sample is the first N catalog entries.
func (r *Repository) ListProducts(ctx context.Context) ([]types.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, brand, price, tags
		FROM products
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []types.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a product by ID.
func (r *Repository) GetProduct(ctx context.Context, id string) (*types.Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, brand, price, tags
		FROM products
		WHERE id = ?
	`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}

	return product, nil
}

// CountProducts returns the number of products in the catalog.
func (r *Repository) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

// scanProduct scans a row into a Product, parsing the tags JSON column.
func scanProduct(scanner interface{ Scan(...any) error }) (*types.Product, error) {
	var product types.Product
	var tagsJSON string

	err := scanner.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Brand,
		&product.Price,
		&tagsJSON,
	)
	if err != nil {
		return nil, err
	}

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &product.Tags); err != nil {
			return nil, fmt.Errorf("parse tags JSON: %w", err)
		}
	}

	return &product, nil
}
