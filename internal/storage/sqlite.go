package storage

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteDialect = dialect{
	name:   "sqlite",
	driver: "sqlite3",
	// A single connection serializes writers; busy_timeout in the DSN covers the rest.
	configurePool: func(conn *sql.DB) {
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
	},
	migrationsTable: `CREATE TABLE IF NOT EXISTS migrations (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            migration VARCHAR(255) NOT NULL UNIQUE,
            executed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	projectsTable: `CREATE TABLE IF NOT EXISTS projects (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name VARCHAR(255) NOT NULL CHECK (name <> ''),
            description TEXT,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	tasksTable: `CREATE TABLE IF NOT EXISTS tasks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title VARCHAR(255) NOT NULL CHECK (title <> ''),
            description TEXT,
            status VARCHAR(20) NOT NULL DEFAULT 'todo' CHECK (status IN ('todo', 'in_progress', 'done')),
            priority VARCHAR(10) NOT NULL DEFAULT 'medium' CHECK (priority IN ('low', 'medium', 'high')),
            assigned_to VARCHAR(255),
            project_id INTEGER,
            due_date DATE,
            created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY(project_id) REFERENCES projects(id) ON DELETE CASCADE
        );`,
}
