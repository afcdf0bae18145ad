// Package sqlkv stores state documents in a single SQL table. The same code
// serves SQLite (mattn/go-sqlite3) and PostgreSQL (pgx stdlib); only the
// placeholder syntax differs. The schema is managed with goose.
package sqlkv

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect selects the SQL flavour.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// driverName maps a dialect to its registered database/sql driver.
func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite3", nil
	case DialectPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("sqlkv: unsupported dialect %q", d)
	}
}

// Storage implements ports.Storage on top of database/sql.
type Storage struct {
	db      *sql.DB
	dialect Dialect
}

var _ ports.Storage = (*Storage)(nil)

// Open connects, verifies the connection and applies pending migrations.
func Open(ctx context.Context, dialect Dialect, dsn string) (*Storage, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlkv: open: %w", err)
	}
	if dialect == DialectSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlkv: ping: %w", err)
	}
	if err := runMigrations(ctx, db, dialect); err != nil {
		db.Close()
		return nil, err
	}
	return &Storage{db: db, dialect: dialect}, nil
}

func runMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("sqlkv: goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("sqlkv: migrate: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// bind rewrites ? placeholders to $n for PostgreSQL.
func (s *Storage) bind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

func (s *Storage) Load(ctx context.Context, key string) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT document FROM state_documents WHERE doc_key = ?`), key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlkv: load %s: %w", key, err)
	}
	return []byte(doc), nil
}

func (s *Storage) Save(ctx context.Context, key string, value []byte) error {
	query := s.bind(`
		INSERT INTO state_documents (doc_key, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (doc_key) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at
	`)
	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC().Unix()); err != nil {
		return fmt.Errorf("sqlkv: save %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM state_documents WHERE doc_key = ?`), key); err != nil {
		return fmt.Errorf("sqlkv: remove %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
