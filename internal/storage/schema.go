package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Migration is a recorded setup step.
type Migration struct {
	Name       string    `json:"migration"`
	ExecutedAt time.Time `json:"executed_at"`
}

type migrationStep struct {
	name string
	run  func(ctx context.Context, db *DB, tx *sql.Tx) error
	// optional steps are skipped, and left unrecorded, when disabled.
	optional bool
}

var migrationSteps = []migrationStep{
	{name: "2025_01_01_000000_create_projects_table", run: func(ctx context.Context, db *DB, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, db.dialect.projectsTable)
		return err
	}},
	{name: "2025_01_01_000001_create_tasks_table", run: func(ctx context.Context, db *DB, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, db.dialect.tasksTable)
		return err
	}},
	{name: "2025_01_01_000002_add_indexes", run: addIndexes},
	{name: "2025_01_01_000003_add_sample_data", run: seedSampleData, optional: true},
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks(assigned_to);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_updated_at ON tasks(updated_at);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at);`,
}

func addIndexes(ctx context.Context, _ *DB, tx *sql.Tx) error {
	for _, stmt := range indexStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// EnsureSchema creates the tables and indexes when absent and, when seed is set,
// loads the demonstration rows into an empty database. It is safe to call on every
// start; each step runs once and is recorded in the migrations table.
func (db *DB) EnsureSchema(ctx context.Context, seed bool) error {
	if _, err := db.conn.ExecContext(ctx, db.dialect.migrationsTable); err != nil {
		return fmt.Errorf("migration failed: create migrations table: %w", err)
	}

	for _, step := range migrationSteps {
		if step.optional && !seed {
			continue
		}
		err := db.withTx(ctx, func(tx *sql.Tx) error {
			var count int
			if err := db.queryRow(ctx, tx, `SELECT COUNT(*) FROM migrations WHERE migration = ?`, step.name).Scan(&count); err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
			if err := step.run(ctx, db, tx); err != nil {
				return err
			}
			if _, err := db.exec(ctx, tx, `INSERT INTO migrations (migration) VALUES (?)`, step.name); err != nil {
				return err
			}
			db.logger.Info("migration applied", slog.String("migration", step.name))
			return nil
		})
		if err != nil {
			return fmt.Errorf("migration failed: %s: %w", step.name, err)
		}
	}
	return nil
}

// AppliedMigrations lists recorded setup steps in execution order.
func (db *DB) AppliedMigrations(ctx context.Context) ([]Migration, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT migration, executed_at FROM migrations ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()

	var out []Migration
	for rows.Next() {
		var m Migration
		if err := rows.Scan(&m.Name, &m.ExecutedAt); err != nil {
			return nil, fmt.Errorf("scan migration: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
