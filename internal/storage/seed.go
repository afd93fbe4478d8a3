package storage

import (
	"context"
	"database/sql"
	"time"
)

type seedProject struct {
	name        string
	description string
}

type seedTask struct {
	title       string
	description string
	status      string
	priority    string
	assignee    string
	project     int // index into seedProjects
	dueInDays   int
}

var seedProjects = []seedProject{
	{"Website Redesign", "Complete redesign of the company website with modern UI/UX"},
	{"Mobile App Development", "Develop a mobile application for iOS and Android platforms"},
	{"Database Migration", "Migrate existing database to new cloud infrastructure"},
}

var seedTasks = []seedTask{
	{"Design Homepage Mockup", "Create initial mockup for the new homepage design", "todo", "high", "john.doe@example.com", 0, 6},
	{"Setup Development Environment", "Configure development environment for mobile app", "in_progress", "medium", "jane.smith@example.com", 1, -1},
	{"Database Schema Design", "Design new database schema for migration", "done", "high", "bob.wilson@example.com", 2, -4},
	{"User Authentication System", "Implement user login and registration", "todo", "high", "alice.johnson@example.com", 1, 11},
	{"Content Management System", "Develop CMS for website content", "in_progress", "medium", "charlie.brown@example.com", 0, 16},
}

// seedSampleData loads the demonstration rows, but only into an empty projects table.
// Due dates are relative to the seeding day; exactly one open task starts out overdue.
func seedSampleData(ctx context.Context, db *DB, tx *sql.Tx) error {
	var count int
	if err := db.queryRow(ctx, tx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	ids := make([]int64, len(seedProjects))
	for i, p := range seedProjects {
		id, err := db.insert(ctx, tx, `INSERT INTO projects (name, description) VALUES (?, ?)`, p.name, p.description)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	today := time.Now()
	for _, t := range seedTasks {
		due := today.AddDate(0, 0, t.dueInDays).Format(dateLayout)
		_, err := db.exec(ctx, tx, `INSERT INTO tasks (title, description, status, priority, assigned_to, project_id, due_date)
            VALUES (?, ?, ?, ?, ?, ?, ?)`, t.title, t.description, t.status, t.priority, t.assignee, ids[t.project], due)
		if err != nil {
			return err
		}
	}
	return nil
}
