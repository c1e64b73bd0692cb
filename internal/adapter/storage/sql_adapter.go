package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/rl1809/stock-control/internal/core/domain"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

type dialect struct {
	schema string
	// returningID is set for drivers without LastInsertId support.
	returningID bool
}

var dialects = map[string]dialect{
	DriverSQLite: {schema: `
		CREATE TABLE IF NOT EXISTS produtos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL,
			quantidade INTEGER NOT NULL
		)`},
	DriverMySQL: {schema: `
		CREATE TABLE IF NOT EXISTS produtos (
			id INTEGER PRIMARY KEY AUTO_INCREMENT,
			nome TEXT NOT NULL,
			quantidade INTEGER NOT NULL
		)`},
	DriverPostgres: {schema: postgresSchema, returningID: true},
	DriverPgx:      {schema: postgresSchema, returningID: true},
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS produtos (
		id SERIAL PRIMARY KEY,
		nome TEXT NOT NULL,
		quantidade INTEGER NOT NULL
	)`

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

type SQLAdapter struct {
	db      *sqlx.DB
	dialect dialect
}

// Open connects to the store named by driver and dsn and makes sure the
// produtos table exists. SQLite keeps a single connection for the lifetime
// of the adapter.
func Open(ctx context.Context, driver, dsn string) (*SQLAdapter, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	case DriverMySQL:
		var err error
		if dsn, err = mysqlFoundRows(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	adapter := &SQLAdapter{db: db, dialect: d}
	if err := adapter.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return adapter, nil
}

func (a *SQLAdapter) Close() error {
	return a.db.Close()
}

// DB exposes the underlying handle for tests and maintenance.
func (a *SQLAdapter) DB() *sqlx.DB {
	return a.db
}

func (a *SQLAdapter) CreateSchema(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, a.dialect.schema); err != nil {
		return fmt.Errorf("create produtos table: %w", err)
	}
	return nil
}

func (a *SQLAdapter) Insert(ctx context.Context, name string, quantity int) (domain.StockItem, error) {
	item := domain.StockItem{Name: name, Quantity: quantity}

	if a.dialect.returningID {
		err := a.db.QueryRowxContext(ctx, a.db.Rebind(`
			INSERT INTO produtos (nome, quantidade) VALUES (?, ?) RETURNING id`),
			name, quantity,
		).Scan(&item.ID)
		if err != nil {
			return domain.StockItem{}, fmt.Errorf("insert item: %w", err)
		}
		return item, nil
	}

	result, err := a.db.ExecContext(ctx, a.db.Rebind(`
		INSERT INTO produtos (nome, quantidade) VALUES (?, ?)`),
		name, quantity,
	)
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("insert item: %w", err)
	}

	item.ID, err = result.LastInsertId()
	if err != nil {
		return domain.StockItem{}, fmt.Errorf("insert item id: %w", err)
	}
	return item, nil
}

func (a *SQLAdapter) DeleteByName(ctx context.Context, name string) (int64, error) {
	result, err := a.db.ExecContext(ctx, a.db.Rebind(`
		DELETE FROM produtos WHERE nome = ?`), name)
	if err != nil {
		return 0, fmt.Errorf("delete item: %w", err)
	}
	return rowsAffected(result)
}

func (a *SQLAdapter) FindByName(ctx context.Context, name string) (*domain.StockItem, error) {
	var item domain.StockItem
	err := a.db.GetContext(ctx, &item, a.db.Rebind(`
		SELECT id, nome AS name, quantidade AS quantity
		FROM produtos WHERE nome = ?
		ORDER BY id LIMIT 1`), name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return &item, nil
}

func (a *SQLAdapter) UpdateQuantity(ctx context.Context, name string, quantity int) (int64, error) {
	result, err := a.db.ExecContext(ctx, a.db.Rebind(`
		UPDATE produtos SET quantidade = ? WHERE nome = ?`),
		quantity, name,
	)
	if err != nil {
		return 0, fmt.Errorf("update quantity: %w", err)
	}
	return rowsAffected(result)
}

func (a *SQLAdapter) UpdateNameAndQuantity(ctx context.Context, name, newName string, quantity int) (int64, error) {
	result, err := a.db.ExecContext(ctx, a.db.Rebind(`
		UPDATE produtos SET nome = ?, quantidade = ? WHERE nome = ?`),
		newName, quantity, name,
	)
	if err != nil {
		return 0, fmt.Errorf("update item: %w", err)
	}
	return rowsAffected(result)
}

func (a *SQLAdapter) ListAll(ctx context.Context) ([]domain.StockItem, error) {
	items := []domain.StockItem{}
	err := a.db.SelectContext(ctx, &items, `
		SELECT id, nome AS name, quantidade AS quantity
		FROM produtos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// mysqlFoundRows makes MySQL report matched rather than changed rows, so an
// edit that leaves a row as it was still counts as a hit.
func mysqlFoundRows(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func rowsAffected(result sql.Result) (int64, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
