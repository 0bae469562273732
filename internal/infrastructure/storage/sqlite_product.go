package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/yourusername/shop-chatbot/internal/domain/entity"
	"github.com/yourusername/shop-chatbot/internal/domain/repository"
)

// sqliteDriver is go-sqlite3 with ulower(), a Unicode aware lower(). The
// built-in lower() only folds ASCII letters.
const sqliteDriver = "sqlite3_ulower"

func init() {
	sql.Register(sqliteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("ulower", strings.ToLower, true)
		},
	})
}

type sqliteProductRepository struct {
	db *sql.DB
}

// NewSQLiteProductRepository opens a fresh SQLite product store at dbPath.
// An existing file is deleted first so the schema and data always start clean.
func NewSQLiteProductRepository(dbPath string) (repository.ProductRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	if err := os.Remove(dbPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove old db file: %w", err)
	}

	db, err := sql.Open(sqliteDriver, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := createProductSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteProductRepository{db: db}, nil
}

func createProductSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_code TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL,
	price TEXT NOT NULL,
	stock INTEGER NOT NULL,
	description TEXT
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SaveMany inserts products in one transaction; an existing code is overwritten
func (s *sqliteProductRepository) SaveMany(ctx context.Context, products []entity.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO products (product_code, name, price, stock, description) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(product_code) DO UPDATE SET
	name = excluded.name,
	price = excluded.price,
	stock = excluded.stock,
	description = excluded.description`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if strings.TrimSpace(p.Code) == "" {
			tx.Rollback()
			return fmt.Errorf("product %q has no code", p.Name)
		}
		if _, err := stmt.ExecContext(ctx, p.Code, p.Name, p.Price.String(), p.Stock, p.Description); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert product %s: %w", p.Code, err)
		}
	}

	return tx.Commit()
}

// FindFirst first row (by id) whose name or code contains term
func (s *sqliteProductRepository) FindFirst(ctx context.Context, term string) (*entity.Product, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, repository.ErrProductNotFound
	}
	pattern := "%" + escapeLike(term) + "%"

	row := s.db.QueryRowContext(ctx, `
SELECT product_code, name, price, stock, description FROM products
WHERE ulower(name) LIKE ? ESCAPE '\' OR ulower(product_code) LIKE ? ESCAPE '\'
ORDER BY id
LIMIT 1`, pattern, pattern)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetAll every row ordered by id
func (s *sqliteProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT product_code, name, price, stock, description FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *sqliteProductRepository) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p     entity.Product
		price string
		desc  sql.NullString
	)
	if err := row.Scan(&p.Code, &p.Name, &price, &p.Stock, &desc); err != nil {
		return nil, err
	}

	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("product %s has invalid price %q: %w", p.Code, price, err)
	}
	p.Price = parsed
	p.Description = desc.String
	return &p, nil
}

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
