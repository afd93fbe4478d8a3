package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/config"
)

var (
	// ErrNotFound is returned when a row addressed by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation wraps input that violates a field constraint.
	ErrValidation = errors.New("invalid input")
)

// DB wraps the shared connection pool and the SQL dialect it speaks.
// Repositories receive it explicitly; there is no package level handle.
type DB struct {
	conn    *sql.DB
	dialect dialect
	logger  *slog.Logger
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the configured database. It does not create the schema; call
// EnsureSchema afterwards.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := sqliteDialect
	if cfg.Postgres() {
		d = postgresDialect
	} else if err := ensureDir(cfg.DBPath); err != nil {
		return nil, err
	}

	conn, err := sql.Open(d.driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	d.configurePool(conn)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect %s: %w", d.name, err)
	}

	logger.Info("database connected", slog.String("type", d.name))
	return &DB{conn: conn, dialect: d, logger: logger}, nil
}

// Close releases the database resources.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Type is the configured database kind ("sqlite" or "postgresql").
func (db *DB) Type() string {
	return db.dialect.name
}

// Ping checks that the database answers a trivial query.
func (db *DB) Ping(ctx context.Context) error {
	var one int
	if err := db.conn.QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// withTx runs fn inside a transaction, rolling back when fn fails.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error("rollback failed", slog.String("error", rbErr.Error()))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// exec binds placeholders for the active dialect before executing.
func (db *DB) exec(ctx context.Context, q querier, query string, args ...any) (sql.Result, error) {
	return q.ExecContext(ctx, db.dialect.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, q querier, query string, args ...any) (*sql.Rows, error) {
	return q.QueryContext(ctx, db.dialect.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, q querier, query string, args ...any) *sql.Row {
	return q.QueryRowContext(ctx, db.dialect.rebind(query), args...)
}

// insert runs an INSERT and returns the generated id.
func (db *DB) insert(ctx context.Context, q querier, query string, args ...any) (int64, error) {
	if db.dialect.returning {
		var id int64
		if err := db.queryRow(ctx, q, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := db.exec(ctx, q, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// affected reports whether a mutation touched at least one row.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// dialect captures the differences between the supported engines.
type dialect struct {
	name          string
	driver        string
	numbered      bool
	returning     bool
	configurePool func(*sql.DB)

	migrationsTable string
	projectsTable   string
	tasksTable      string
}

// rebind rewrites ? placeholders to $1..$n for engines that number them.
// Queries in this package never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.numbered || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

const dateLayout = "2006-01-02"
