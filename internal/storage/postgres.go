package storage

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	name:      "postgresql",
	driver:    "postgres",
	numbered:  true,
	returning: true,
	configurePool: func(conn *sql.DB) {
		conn.SetMaxIdleConns(10)
		conn.SetMaxOpenConns(25)
		conn.SetConnMaxLifetime(time.Hour)
	},
	migrationsTable: `CREATE TABLE IF NOT EXISTS migrations (
            id SERIAL PRIMARY KEY,
            migration VARCHAR(255) NOT NULL UNIQUE,
            executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	projectsTable: `CREATE TABLE IF NOT EXISTS projects (
            id BIGSERIAL PRIMARY KEY,
            name VARCHAR(255) NOT NULL CHECK (name <> ''),
            description TEXT,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	tasksTable: `CREATE TABLE IF NOT EXISTS tasks (
            id BIGSERIAL PRIMARY KEY,
            title VARCHAR(255) NOT NULL CHECK (title <> ''),
            description TEXT,
            status VARCHAR(20) NOT NULL DEFAULT 'todo' CHECK (status IN ('todo', 'in_progress', 'done')),
            priority VARCHAR(10) NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high')),
            assigned_to VARCHAR(255),
            project_id BIGINT REFERENCES projects(id) ON DELETE CASCADE,
            due_date DATE,
            created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
}
